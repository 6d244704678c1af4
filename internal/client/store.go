package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/and161185/kanban/internal/model"
)

// Status is the lifecycle of the last store operation.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ErrNoBoard is returned by board-scoped operations before a board is loaded.
var ErrNoBoard = errors.New("no board loaded")

// Store keeps a local copy of one board in step with the server.
// Card moves are applied locally first and reconciled with the server's answer;
// every other mutation waits for the server.
type Store struct {
	remote Remote

	// ops serializes mutations so an optimistic move is reconciled before the next one starts.
	ops sync.Mutex

	mu      sync.RWMutex
	current *model.Board
	boardID string
	status  Status
	err     error
}

// NewStore returns an idle store backed by remote.
func NewStore(remote Remote) *Store {
	return &Store{remote: remote, status: StatusIdle}
}

// Current returns a copy of the local board, or nil.
func (s *Store) Current() *model.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// BoardID returns the id of the board the store tracks, even while it is loading.
func (s *Store) BoardID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.boardID
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Err returns the error of the last failed operation; nil after a success.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Reset forgets the local board.
func (s *Store) Reset() {
	s.ops.Lock()
	defer s.ops.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current, s.boardID, s.status, s.err = nil, "", StatusIdle, nil
}

func (s *Store) begin() {
	s.mu.Lock()
	s.status, s.err = StatusLoading, nil
	s.mu.Unlock()
}

// finish replaces the local board wholesale on success, or records err and keeps it.
func (s *Store) finish(b *model.Board, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status, s.err = StatusError, err
		return err
	}
	s.current, s.boardID = b, b.BoardID
	s.status = StatusSuccess
	return nil
}

// loadedID returns the id of the local board, or ErrNoBoard.
func (s *Store) loadedID() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return "", ErrNoBoard
	}
	return s.current.BoardID, nil
}

// Load fetches boardID and replaces the local board. The previous board is
// dropped as soon as loading starts.
func (s *Store) Load(ctx context.Context, boardID string) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	s.mu.Lock()
	s.current, s.boardID = nil, boardID
	s.status, s.err = StatusLoading, nil
	s.mu.Unlock()

	return s.finish(s.remote.GetBoard(ctx, boardID))
}

// Create makes a new board on the server and switches to it.
func (s *Store) Create(ctx context.Context, name string) error {
	s.ops.Lock()
	defer s.ops.Unlock()
	s.begin()
	return s.finish(s.remote.CreateBoard(ctx, name))
}

// Rename renames the local board.
func (s *Store) Rename(ctx context.Context, name string) error {
	return s.mutate(ctx, func(ctx context.Context, boardID string) (*model.Board, error) {
		return s.remote.RenameBoard(ctx, boardID, name)
	})
}

// Delete removes boardID on the server and forgets it locally if it is the current board.
func (s *Store) Delete(ctx context.Context, boardID string) error {
	s.ops.Lock()
	defer s.ops.Unlock()
	s.begin()

	err := s.remote.DeleteBoard(ctx, boardID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status, s.err = StatusError, err
		return err
	}
	s.status = StatusSuccess
	if s.boardID == boardID {
		s.current, s.boardID = nil, ""
	}
	return nil
}

// AddCard appends a card to column of the local board.
func (s *Store) AddCard(ctx context.Context, column model.ColumnKey, title, description string) error {
	return s.mutate(ctx, func(ctx context.Context, boardID string) (*model.Board, error) {
		return s.remote.AddCard(ctx, boardID, column, title, description)
	})
}

// UpdateCard edits a card of the local board; nil description leaves it unchanged.
func (s *Store) UpdateCard(ctx context.Context, cardID, title string, description *string) error {
	return s.mutate(ctx, func(ctx context.Context, boardID string) (*model.Board, error) {
		return s.remote.UpdateCard(ctx, boardID, cardID, title, description)
	})
}

// DeleteCard removes a card from the local board.
func (s *Store) DeleteCard(ctx context.Context, cardID string) error {
	return s.mutate(ctx, func(ctx context.Context, boardID string) (*model.Board, error) {
		return s.remote.DeleteCard(ctx, boardID, cardID)
	})
}

// mutate runs a non-optimistic server edit against the loaded board.
func (s *Store) mutate(ctx context.Context, call func(context.Context, string) (*model.Board, error)) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	boardID, err := s.loadedID()
	if err != nil {
		return err
	}
	s.begin()
	return s.finish(call(ctx, boardID))
}

// MoveCard applies the move locally, then asks the server. A move the local board
// rejects never reaches the server. When the server rejects it the store re-fetches
// the board and returns the server's error; if that re-fetch fails too the local
// board is dropped and both errors are returned.
func (s *Store) MoveCard(ctx context.Context, cardID string, from, to model.Position) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return ErrNoBoard
	}
	next := s.current.Clone()
	if err := next.Columns.MoveCard(cardID, from, to); err != nil {
		s.status, s.err = StatusError, err
		s.mu.Unlock()
		return err
	}
	boardID := next.BoardID
	s.current = next
	s.status, s.err = StatusLoading, nil
	s.mu.Unlock()

	b, err := s.remote.MoveCard(ctx, boardID, cardID, from, to)
	if err == nil {
		return s.finish(b, nil)
	}

	fresh, ferr := s.remote.GetBoard(ctx, boardID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusError
	if ferr != nil {
		s.current, s.boardID = nil, ""
		s.err = errors.Join(err, fmt.Errorf("reload board %s: %w", boardID, ferr))
		return s.err
	}
	s.current = fresh
	s.err = err
	return err
}
