package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Priority levels. Zero is the default; the valid range is closed.
const (
	PriorityNone = 0
	PriorityLow  = 1
	PriorityMed  = 2
	PriorityHigh = 3
)

var ErrInvalidPriority = errors.New("domain: priority must be between 0 and 3")

type Task struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Category    string
	DueDate     *time.Time
	Parameters  map[string]any
	Completed   bool
	Tags        []string
	Priority    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Normalize trims free-text fields and applies the defaults the task
// always carries: the "General" category, an empty parameter map and an
// empty tag list instead of nils.
func (t *Task) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)
	if t.Category == "" {
		t.Category = DefaultCategory.Name
	}
	if t.Parameters == nil {
		t.Parameters = map[string]any{}
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
}

func (t Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name: %w", ErrEmptyName)
	}
	if t.Priority < PriorityNone || t.Priority > PriorityHigh {
		return ErrInvalidPriority
	}
	return nil
}
