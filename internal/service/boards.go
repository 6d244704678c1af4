// Package service contains the board mutation service.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/and161185/kanban/internal/errs"
	"github.com/and161185/kanban/internal/idgen"
	"github.com/and161185/kanban/internal/model"
	"github.com/and161185/kanban/internal/repository"
)

// maxIDAttempts bounds retries when a freshly minted id collides.
const maxIDAttempts = 3

// BoardService defines structural and content edits over boards and their cards.
// Every method returns either a fully updated board or an error; never a partial edit.
type BoardService interface {
	// CreateBoard persists a new board with three empty columns.
	CreateBoard(ctx context.Context, name string) (*model.Board, error)
	// GetBoard returns a board by its public id.
	GetBoard(ctx context.Context, boardID string) (*model.Board, error)
	// RenameBoard changes the board name.
	RenameBoard(ctx context.Context, boardID, name string) (*model.Board, error)
	// DeleteBoard removes a board and all its cards.
	DeleteBoard(ctx context.Context, boardID string) error
	// AddCard appends a new card to the end of column.
	AddCard(ctx context.Context, boardID string, column model.ColumnKey, title, description string) (*model.Board, error)
	// MoveCard relocates a card between slots; see model.Columns.MoveCard.
	MoveCard(ctx context.Context, boardID, cardID string, from, to model.Position) (*model.Board, error)
	// UpdateCard edits title and, when given, description of a card.
	UpdateCard(ctx context.Context, boardID, cardID string, patch CardPatch) (*model.Board, error)
	// DeleteCard removes a card from whichever column holds it.
	DeleteCard(ctx context.Context, boardID, cardID string) (*model.Board, error)
}

// CardPatch carries card edits. A nil Description leaves it unchanged.
type CardPatch struct {
	Title       string
	Description *string
}

type BoardServiceImpl struct {
	repo repository.BoardRepository
	ids  idgen.Generator
	now  func() time.Time
}

// NewBoardService constructs BoardService. A nil ids falls back to nanoid.
func NewBoardService(repo repository.BoardRepository, ids idgen.Generator) *BoardServiceImpl {
	if ids == nil {
		ids = idgen.New()
	}
	return &BoardServiceImpl{repo: repo, ids: ids, now: utcMillis}
}

// utcMillis matches the millisecond precision of ISO-8601 timestamps on the wire.
func utcMillis() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// CreateBoard validates the name and stores a new board.
func (s *BoardServiceImpl) CreateBoard(ctx context.Context, name string) (*model.Board, error) {
	n, err := model.NormalizeBoardName(name)
	if err != nil {
		return nil, err
	}
	for attempt := 1; ; attempt++ {
		id, err := s.ids.BoardID()
		if err != nil {
			return nil, fmt.Errorf("generate board id: %w", err)
		}
		b := model.NewBoard(id, n, s.now())
		err = s.repo.Create(ctx, b)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, errs.ErrAlreadyExists) || attempt == maxIDAttempts {
			return nil, fmt.Errorf("create board: %w", err)
		}
	}
}

// GetBoard loads a board.
func (s *BoardServiceImpl) GetBoard(ctx context.Context, boardID string) (*model.Board, error) {
	return s.load(ctx, boardID)
}

// RenameBoard validates the new name and stores it.
func (s *BoardServiceImpl) RenameBoard(ctx context.Context, boardID, name string) (*model.Board, error) {
	b, err := s.load(ctx, boardID)
	if err != nil {
		return nil, err
	}
	n, err := model.NormalizeBoardName(name)
	if err != nil {
		return nil, err
	}
	b.Name = n
	b.UpdatedAt = s.now()
	return s.save(ctx, b)
}

// DeleteBoard removes a board. Deleting a missing board reports not found.
func (s *BoardServiceImpl) DeleteBoard(ctx context.Context, boardID string) error {
	err := s.repo.Delete(ctx, boardID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrNotFound):
		return errs.NotFound("Board not found")
	default:
		return fmt.Errorf("delete board %s: %w", boardID, err)
	}
}

// AddCard validates input and appends a fresh card to column.
func (s *BoardServiceImpl) AddCard(ctx context.Context, boardID string, column model.ColumnKey, title, description string) (*model.Board, error) {
	b, err := s.load(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !column.Valid() {
		return nil, errs.Validation(fmt.Sprintf("Unknown column %q", column))
	}
	t, err := model.NormalizeTitle(title)
	if err != nil {
		return nil, err
	}
	if err := model.ValidateDescription(description); err != nil {
		return nil, err
	}

	id, err := s.newCardID(b)
	if err != nil {
		return nil, err
	}
	now := s.now()
	card := model.Card{ID: id, Title: t, Description: description, CreatedAt: now, UpdatedAt: now}
	if err := b.Columns.Append(column, card); err != nil {
		return nil, err
	}
	b.UpdatedAt = now
	return s.save(ctx, b)
}

// MoveCard relocates a card. The card itself, including its updatedAt, is untouched.
func (s *BoardServiceImpl) MoveCard(ctx context.Context, boardID, cardID string, from, to model.Position) (*model.Board, error) {
	b, err := s.load(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := b.Columns.MoveCard(cardID, from, to); err != nil {
		return nil, err
	}
	b.UpdatedAt = s.now()
	return s.save(ctx, b)
}

// UpdateCard edits a card found by scanning the columns in declared order.
func (s *BoardServiceImpl) UpdateCard(ctx context.Context, boardID, cardID string, patch CardPatch) (*model.Board, error) {
	b, err := s.load(ctx, boardID)
	if err != nil {
		return nil, err
	}
	t, err := model.NormalizeTitle(patch.Title)
	if err != nil {
		return nil, err
	}
	if patch.Description != nil {
		if err := model.ValidateDescription(*patch.Description); err != nil {
			return nil, err
		}
	}
	pos, ok := b.FindCard(cardID)
	if !ok {
		return nil, errs.NotFound("Card not found")
	}

	now := s.now()
	card := b.CardAt(pos)
	card.Title = t
	if patch.Description != nil {
		card.Description = *patch.Description
	}
	card.UpdatedAt = now
	b.UpdatedAt = now
	return s.save(ctx, b)
}

// DeleteCard removes a card found by scanning the columns in declared order.
func (s *BoardServiceImpl) DeleteCard(ctx context.Context, boardID, cardID string) (*model.Board, error) {
	b, err := s.load(ctx, boardID)
	if err != nil {
		return nil, err
	}
	pos, ok := b.FindCard(cardID)
	if !ok {
		return nil, errs.NotFound("Card not found")
	}
	if _, err := b.Columns.RemoveAt(pos); err != nil {
		return nil, err
	}
	b.UpdatedAt = s.now()
	return s.save(ctx, b)
}

func (s *BoardServiceImpl) load(ctx context.Context, boardID string) (*model.Board, error) {
	b, err := s.repo.Get(ctx, boardID)
	switch {
	case err == nil:
		return b, nil
	case errors.Is(err, errs.ErrNotFound):
		return nil, errs.NotFound("Board not found")
	default:
		return nil, fmt.Errorf("load board %s: %w", boardID, err)
	}
}

// save writes b back. A board deleted between load and save reports not found.
func (s *BoardServiceImpl) save(ctx context.Context, b *model.Board) (*model.Board, error) {
	err := s.repo.Update(ctx, b)
	switch {
	case err == nil:
		return b, nil
	case errors.Is(err, errs.ErrNotFound):
		return nil, errs.NotFound("Board not found")
	default:
		return nil, fmt.Errorf("save board %s: %w", b.BoardID, err)
	}
}

func (s *BoardServiceImpl) newCardID(b *model.Board) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.ids.CardID()
		if err != nil {
			return "", fmt.Errorf("generate card id: %w", err)
		}
		if !b.HasCard(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate card id: %w", errs.ErrAlreadyExists)
}
