// Package memory is a process-local BoardRepository, used for development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/and161185/kanban/internal/errs"
	"github.com/and161185/kanban/internal/model"
)

// BoardRepo keeps boards in a map guarded by a RWMutex. Boards are copied on
// the way in and out.
type BoardRepo struct {
	mu     sync.RWMutex
	boards map[string]*model.Board
}

// NewBoardRepo returns an empty repository.
func NewBoardRepo() *BoardRepo {
	return &BoardRepo{boards: make(map[string]*model.Board)}
}

func (r *BoardRepo) Create(ctx context.Context, b *model.Board) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[b.BoardID]; ok {
		return errs.ErrAlreadyExists
	}
	r.boards[b.BoardID] = b.Clone()
	return nil
}

func (r *BoardRepo) Get(ctx context.Context, boardID string) (*model.Board, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.boards[boardID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return b.Clone(), nil
}

func (r *BoardRepo) Update(ctx context.Context, b *model.Board) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.boards[b.BoardID]
	if !ok {
		return errs.ErrNotFound
	}
	next := b.Clone()
	next.CreatedAt = cur.CreatedAt
	r.boards[b.BoardID] = next
	return nil
}

func (r *BoardRepo) Delete(ctx context.Context, boardID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[boardID]; !ok {
		return errs.ErrNotFound
	}
	delete(r.boards, boardID)
	return nil
}

// Len reports how many boards are stored.
func (r *BoardRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.boards)
}
