package http

import (
	"time"

	"github.com/oakmount/taskhub/internal/taskhub/domain"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// TokenResponse is the body returned by the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LabelResponse is a named, coloured label (category or tag).
type LabelResponse struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// UserResponse is the public view of an account. It never carries the
// password hash.
type UserResponse struct {
	ID         int64           `json:"id"`
	Username   string          `json:"username"`
	Email      string          `json:"email,omitempty"`
	FullName   string          `json:"full_name,omitempty"`
	Disabled   bool            `json:"disabled"`
	Categories []LabelResponse `json:"categories"`
	Tags       []LabelResponse `json:"tags"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID          int64          `json:"id"`
	OwnerID     int64          `json:"owner_id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Parameters  map[string]any `json:"parameters"`
	Completed   bool           `json:"completed"`
	Tags        []string       `json:"tags"`
	Priority    int            `json:"priority"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// HealthResponse is returned by the health probe endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
	Checks  string `json:"checks,omitempty"`
}

func toUserResponse(u domain.User) UserResponse {
	cats := make([]LabelResponse, 0, len(u.Categories))
	for _, c := range u.Categories {
		cats = append(cats, LabelResponse{Name: c.Name, Color: c.Color})
	}
	tags := make([]LabelResponse, 0, len(u.Tags))
	for _, t := range u.Tags {
		tags = append(tags, LabelResponse{Name: t.Name, Color: t.Color})
	}
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Disabled:   u.Disabled,
		Categories: cats,
		Tags:       tags,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func toTaskResponse(t domain.Task) TaskResponse {
	params := t.Parameters
	if params == nil {
		params = map[string]any{}
	}
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return TaskResponse{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		DueDate:     t.DueDate,
		Parameters:  params,
		Completed:   t.Completed,
		Tags:        tags,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}
