package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oakmount/taskhub/internal/taskhub/domain"
	"github.com/oakmount/taskhub/internal/taskhub/store"
)

type tasksRepo struct {
	db dbtx
}

const taskColumns = `id, owner_id, name, description, category, due_date, parameters, completed, tags, priority, created_at, updated_at`

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	params, err := marshalJSON(t.Parameters)
	if err != nil {
		return domain.Task{}, err
	}
	tags, err := marshalJSON(t.Tags)
	if err != nil {
		return domain.Task{}, err
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (owner_id, name, description, category, due_date, parameters, completed, tags, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.OwnerID, t.Name, t.Description, t.Category, mapOptionalTime(t.DueDate),
		params, t.Completed, tags, t.Priority, now, now,
	)
	if err != nil {
		return domain.Task{}, mapConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Task{}, err
	}

	t.ID = id
	t.CreatedAt = now
	t.UpdatedAt = now
	return t, nil
}

func (r *tasksRepo) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	params, err := marshalJSON(t.Parameters)
	if err != nil {
		return err
	}
	tags, err := marshalJSON(t.Tags)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET name = ?, description = ?, category = ?, due_date = ?, parameters = ?, completed = ?, tags = ?, priority = ?, updated_at = ?
		WHERE id = ?`,
		t.Name, t.Description, t.Category, mapOptionalTime(t.DueDate),
		params, t.Completed, tags, t.Priority, time.Now().UTC(), t.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tasksRepo) ListTasks(ctx context.Context, ownerID int64, f store.TaskFilter) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = ?`
	args := []any{ownerID}

	if f.Category != nil {
		query += ` AND category = ?`
		args = append(args, *f.Category)
	}
	if f.Completed != nil {
		query += ` AND completed = ?`
		args = append(args, *f.Completed)
	}
	if f.Priority != nil {
		query += ` AND priority = ?`
		args = append(args, *f.Priority)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		// Tag membership is filtered here rather than in SQL: tags live
		// in a JSON column and the jsonfile driver must match behavior
		// anyway.
		if f.Tag != nil && !containsTag(t.Tags, *f.Tag) {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func containsTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

func scanTask(row scanner) (domain.Task, error) {
	var (
		t         domain.Task
		due       sql.NullTime
		rawParams string
		rawTags   string
	)
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Name, &t.Description, &t.Category, &due,
		&rawParams, &t.Completed, &rawTags, &t.Priority, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}

	t.DueDate = mapNullTimePtr(due)

	t.Parameters = map[string]any{}
	if rawParams != "" {
		if err := json.Unmarshal([]byte(rawParams), &t.Parameters); err != nil {
			return domain.Task{}, fmt.Errorf("sqlite: decode parameters: %w", err)
		}
	}

	t.Tags = []string{}
	if rawTags != "" {
		if err := json.Unmarshal([]byte(rawTags), &t.Tags); err != nil {
			return domain.Task{}, fmt.Errorf("sqlite: decode task tags: %w", err)
		}
	}
	return t, nil
}
