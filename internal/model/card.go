package model

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/and161185/kanban/internal/errs"
)

// Limits on user-supplied text, counted in characters.
const (
	MaxTitleLen       = 64
	MaxDescriptionLen = 1000
	MaxBoardNameLen   = 100
)

// Card is a single task inside a board column.
type Card struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// NormalizeTitle trims title and checks it is present and short enough.
func NormalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errs.Validation("Title is required")
	}
	if utf8.RuneCountInString(t) > MaxTitleLen {
		return "", errs.Validation(fmt.Sprintf("Title must be at most %d characters", MaxTitleLen))
	}
	return t, nil
}

// ValidateDescription checks the description length; empty is allowed.
func ValidateDescription(desc string) error {
	if utf8.RuneCountInString(desc) > MaxDescriptionLen {
		return errs.Validation(fmt.Sprintf("Description must be at most %d characters", MaxDescriptionLen))
	}
	return nil
}

// NormalizeBoardName trims name and checks it is present and short enough.
func NormalizeBoardName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", errs.Validation("Name is required")
	}
	if utf8.RuneCountInString(n) > MaxBoardNameLen {
		return "", errs.Validation(fmt.Sprintf("Name must be at most %d characters", MaxBoardNameLen))
	}
	return n, nil
}
