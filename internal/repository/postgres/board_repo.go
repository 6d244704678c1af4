package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/and161185/kanban/internal/errs"
	"github.com/and161185/kanban/internal/model"
)

// BoardRepo implements BoardRepository using PostgreSQL, keeping the three
// card sequences of a board in one JSONB document.
type BoardRepo struct{ db *DB }

// NewBoardRepo constructs a board repository.
func NewBoardRepo(db *DB) *BoardRepo { return &BoardRepo{db: db} }

// Create inserts a new board row.
func (r *BoardRepo) Create(ctx context.Context, b *model.Board) error {
	cols, err := json.Marshal(b.Columns)
	if err != nil {
		return fmt.Errorf("encode columns: %w", err)
	}
	const q = `
INSERT INTO boards (board_id, name, columns, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err = r.db.Pool.Exec(ctx, q, b.BoardID, b.Name, cols, b.CreatedAt, b.UpdatedAt)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// Get selects a board by its public id.
func (r *BoardRepo) Get(ctx context.Context, boardID string) (*model.Board, error) {
	const q = `
SELECT board_id, name, columns, created_at, updated_at
FROM boards WHERE board_id=$1`
	var (
		b    model.Board
		cols []byte
		ca   time.Time
		ua   time.Time
	)
	err := r.db.Pool.QueryRow(ctx, q, boardID).Scan(&b.BoardID, &b.Name, &cols, &ca, &ua)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(cols, &b.Columns); err != nil {
		return nil, fmt.Errorf("decode columns of board %s: %w", boardID, err)
	}
	b.CreatedAt, b.UpdatedAt = ca.UTC(), ua.UTC()
	return b.Clone(), nil
}

// Update overwrites the mutable fields of a board.
func (r *BoardRepo) Update(ctx context.Context, b *model.Board) error {
	cols, err := json.Marshal(b.Columns)
	if err != nil {
		return fmt.Errorf("encode columns: %w", err)
	}
	const q = `UPDATE boards SET name=$2, columns=$3, updated_at=$4 WHERE board_id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, b.BoardID, b.Name, cols, b.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a board row; its cards go with it.
func (r *BoardRepo) Delete(ctx context.Context, boardID string) error {
	const q = `DELETE FROM boards WHERE board_id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, boardID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
