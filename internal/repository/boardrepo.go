// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/kanban/internal/model"
)

// BoardRepository persists whole boards keyed by their public boardId.
// Implementations never hand out boards that alias their internal state.
type BoardRepository interface {
	// Create stores a new board. Returns errs.ErrAlreadyExists if the boardId is taken.
	Create(ctx context.Context, b *model.Board) error

	// Get loads a board by boardId. Returns errs.ErrNotFound if absent.
	Get(ctx context.Context, boardID string) (*model.Board, error)

	// Update replaces name, columns and updatedAt of an existing board.
	// Returns errs.ErrNotFound if absent.
	Update(ctx context.Context, b *model.Board) error

	// Delete removes a board together with its cards. Returns errs.ErrNotFound if absent.
	Delete(ctx context.Context, boardID string) error
}
