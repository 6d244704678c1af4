// Package client talks to the board service and keeps an optimistic local copy of one board.
package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/and161185/kanban/internal/api"
	"github.com/and161185/kanban/internal/convert"
	"github.com/and161185/kanban/internal/errs"
	"github.com/and161185/kanban/internal/model"
)

// Remote mirrors the board service operations over the wire.
type Remote interface {
	CreateBoard(ctx context.Context, name string) (*model.Board, error)
	GetBoard(ctx context.Context, boardID string) (*model.Board, error)
	RenameBoard(ctx context.Context, boardID, name string) (*model.Board, error)
	DeleteBoard(ctx context.Context, boardID string) error
	AddCard(ctx context.Context, boardID string, column model.ColumnKey, title, description string) (*model.Board, error)
	MoveCard(ctx context.Context, boardID, cardID string, from, to model.Position) (*model.Board, error)
	UpdateCard(ctx context.Context, boardID, cardID, title string, description *string) (*model.Board, error)
	DeleteCard(ctx context.Context, boardID, cardID string) (*model.Board, error)
}

// GRPCRemote implements Remote over a gRPC connection.
type GRPCRemote struct {
	cl api.BoardServiceClient
}

var _ Remote = (*GRPCRemote)(nil)

// NewGRPCRemote wraps cc; calls use the JSON codec.
func NewGRPCRemote(cc grpc.ClientConnInterface) *GRPCRemote {
	return &GRPCRemote{cl: api.NewBoardServiceClient(cc)}
}

// fromStatus turns a gRPC status back into an errs kind carrying the server message.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return errs.Validation(st.Message())
	case codes.NotFound:
		return errs.NotFound(st.Message())
	case codes.AlreadyExists:
		return &errs.Error{Kind: errs.ErrAlreadyExists, Msg: st.Message()}
	default:
		return fmt.Errorf("rpc: %w", err)
	}
}

func board(in *api.Board, err error) (*model.Board, error) {
	if err != nil {
		return nil, fromStatus(err)
	}
	return convert.FromAPIBoard(in)
}

func (r *GRPCRemote) CreateBoard(ctx context.Context, name string) (*model.Board, error) {
	return board(r.cl.CreateBoard(ctx, &api.CreateBoardRequest{Name: name}))
}

func (r *GRPCRemote) GetBoard(ctx context.Context, boardID string) (*model.Board, error) {
	return board(r.cl.GetBoard(ctx, &api.GetBoardRequest{BoardID: boardID}))
}

func (r *GRPCRemote) RenameBoard(ctx context.Context, boardID, name string) (*model.Board, error) {
	return board(r.cl.RenameBoard(ctx, &api.RenameBoardRequest{BoardID: boardID, Name: name}))
}

func (r *GRPCRemote) DeleteBoard(ctx context.Context, boardID string) error {
	if _, err := r.cl.DeleteBoard(ctx, &api.DeleteBoardRequest{BoardID: boardID}); err != nil {
		return fromStatus(err)
	}
	return nil
}

func (r *GRPCRemote) AddCard(ctx context.Context, boardID string, column model.ColumnKey, title, description string) (*model.Board, error) {
	return board(r.cl.AddCard(ctx, &api.AddCardRequest{
		BoardID: boardID, Column: string(column), Title: title, Description: description,
	}))
}

func (r *GRPCRemote) MoveCard(ctx context.Context, boardID, cardID string, from, to model.Position) (*model.Board, error) {
	return board(r.cl.MoveCard(ctx, &api.MoveCardRequest{
		BoardID: boardID, CardID: cardID,
		From: convert.ToAPIPosition(from), To: convert.ToAPIPosition(to),
	}))
}

func (r *GRPCRemote) UpdateCard(ctx context.Context, boardID, cardID, title string, description *string) (*model.Board, error) {
	return board(r.cl.UpdateCard(ctx, &api.UpdateCardRequest{
		BoardID: boardID, CardID: cardID, Title: title, Description: description,
	}))
}

func (r *GRPCRemote) DeleteCard(ctx context.Context, boardID, cardID string) (*model.Board, error) {
	return board(r.cl.DeleteCard(ctx, &api.DeleteCardRequest{BoardID: boardID, CardID: cardID}))
}
