package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyName    = errors.New("domain: name cannot be empty")
	ErrInvalidColor = errors.New("domain: color must be a #rrggbb hex code")
)

// DefaultCategory is seeded into every new user's category set.
var DefaultCategory = Category{Name: "General", Color: "#5dafb0"}

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // argon2id encoded, never exposed
	FullName     string
	Disabled     bool
	Categories   []Category
	Tags         []Tag
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Category is a named grouping owned by a single user. Names are unique
// within that user's set.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Tag is a named label owned by a single user, scoped the same way as
// Category.
type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return ValidateColor(c.Color)
}

func (t Tag) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	return ValidateColor(t.Color)
}

// ValidateColor accepts display colors in #rrggbb form only.
func ValidateColor(color string) error {
	if len(color) != 7 || color[0] != '#' {
		return ErrInvalidColor
	}
	for _, r := range color[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return ErrInvalidColor
		}
	}
	return nil
}

// HasCategory reports whether the user already owns a category with the
// given name.
func (u User) HasCategory(name string) bool {
	for _, c := range u.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// HasTag reports whether the user already owns a tag with the given name.
func (u User) HasTag(name string) bool {
	for _, t := range u.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}
