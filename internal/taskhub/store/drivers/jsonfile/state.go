package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/oakmount/taskhub/internal/taskhub/domain"
)

// userRecord and taskRecord mirror the relational rows so the two
// backends persist identically shaped entries.
type userRecord struct {
	ID           int64             `json:"id"`
	Username     string            `json:"username"`
	Email        string            `json:"email"`
	PasswordHash string            `json:"password_hash"`
	FullName     string            `json:"full_name"`
	Disabled     bool              `json:"disabled"`
	Categories   []domain.Category `json:"categories"`
	Tags         []domain.Tag      `json:"tags"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type taskRecord struct {
	ID          int64          `json:"id"`
	OwnerID     int64          `json:"owner_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	DueDate     *time.Time     `json:"due_date"`
	Parameters  map[string]any `json:"parameters"`
	Completed   bool           `json:"completed"`
	Tags        []string       `json:"tags"`
	Priority    int            `json:"priority"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// state is an in-memory snapshot of both documents. All repo logic
// operates on a state; persistence is the store's concern.
type state struct {
	users map[int64]userRecord
	tasks map[int64]taskRecord
}

func (s *Store) load() (*state, error) {
	users, err := loadDocument[userRecord](s.usersPath)
	if err != nil {
		return nil, err
	}
	tasks, err := loadDocument[taskRecord](s.tasksPath)
	if err != nil {
		return nil, err
	}
	return &state{users: users, tasks: tasks}, nil
}

func (s *Store) persist(st *state) error {
	if err := writeDocument(s.usersPath, encodeDocument(st.users)); err != nil {
		return err
	}
	return writeDocument(s.tasksPath, encodeDocument(st.tasks))
}

func loadDocument[T any](path string) (map[int64]T, error) {
	out := map[int64]T{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return out, nil
	}

	keyed := map[string]T{}
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, fmt.Errorf("jsonfile: decode %s: %w", path, err)
	}
	for k, v := range keyed {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("jsonfile: bad id key %q in %s", k, path)
		}
		out[id] = v
	}
	return out, nil
}

func encodeDocument[T any](entries map[int64]T) []byte {
	keyed := make(map[string]T, len(entries))
	for id, v := range entries {
		keyed[strconv.FormatInt(id, 10)] = v
	}
	// Indented like the original documents so they stay hand-inspectable.
	data, _ := json.MarshalIndent(keyed, "", "    ")
	return append(data, '\n')
}

// nextID assigns max+1, matching autoincrement behavior closely enough
// for a single-writer development store.
func nextID[T any](entries map[int64]T) int64 {
	var max int64
	for id := range entries {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func toUserRecord(u domain.User) userRecord {
	if u.Categories == nil {
		u.Categories = []domain.Category{}
	}
	if u.Tags == nil {
		u.Tags = []domain.Tag{}
	}
	return userRecord{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		Disabled:     u.Disabled,
		Categories:   u.Categories,
		Tags:         u.Tags,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func fromUserRecord(r userRecord) domain.User {
	if r.Categories == nil {
		r.Categories = []domain.Category{}
	}
	if r.Tags == nil {
		r.Tags = []domain.Tag{}
	}
	return domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FullName:     r.FullName,
		Disabled:     r.Disabled,
		Categories:   r.Categories,
		Tags:         r.Tags,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toTaskRecord(t domain.Task) taskRecord {
	if t.Parameters == nil {
		t.Parameters = map[string]any{}
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return taskRecord{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		DueDate:     t.DueDate,
		Parameters:  t.Parameters,
		Completed:   t.Completed,
		Tags:        t.Tags,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func fromTaskRecord(r taskRecord) domain.Task {
	if r.Parameters == nil {
		r.Parameters = map[string]any{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return domain.Task{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		DueDate:     r.DueDate,
		Parameters:  r.Parameters,
		Completed:   r.Completed,
		Tags:        r.Tags,
		Priority:    r.Priority,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
