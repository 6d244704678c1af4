// Package grpcserver exposes the board service over gRPC with a JSON codec.
package grpcserver

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	reflectionv1 "google.golang.org/grpc/reflection/grpc_reflection_v1"
	reflectionv1alpha "google.golang.org/grpc/reflection/grpc_reflection_v1alpha"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	"github.com/and161185/kanban/internal/api"
	"github.com/and161185/kanban/internal/convert"
	"github.com/and161185/kanban/internal/errs"
	"github.com/and161185/kanban/internal/model"
	"github.com/and161185/kanban/internal/service"
)

// Server wires the board service into gRPC handlers.
type Server struct {
	svc service.BoardService
}

var _ api.BoardServiceServer = (*Server)(nil)

// New constructs a gRPC handler set with the injected service.
func New(svc service.BoardService) *Server {
	return &Server{svc: svc}
}

// NewGRPCServer builds a grpc.Server with interceptors, the board service and health
// registered. Reflection is only enabled in dev mode and only lists services that
// have a registered proto descriptor; the JSON-coded board service has none.
func NewGRPCServer(app *Server, log *zap.Logger, dev bool, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		RecoverUnary(log),
		RequestIDUnary(),
		LoggingUnary(log),
	))
	s := grpc.NewServer(opts...)
	api.RegisterBoardServiceServer(s, app)

	hs := health.NewServer()
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	if dev {
		registerReflection(s)
	}
	return s, hs
}

func registerReflection(s *grpc.Server) {
	rs := reflection.NewServerV1(reflection.ServerOptions{Services: describedServices{s}})
	reflectionv1.RegisterServerReflectionServer(s, rs)
	reflectionv1alpha.RegisterServerReflectionServer(s, reflection.NewServer(reflection.ServerOptions{Services: describedServices{s}}))
}

// describedServices hides services reflection clients could list but not describe.
type describedServices struct {
	reflection.ServiceInfoProvider
}

func (d describedServices) GetServiceInfo() map[string]grpc.ServiceInfo {
	out := make(map[string]grpc.ServiceInfo)
	for name, info := range d.ServiceInfoProvider.GetServiceInfo() {
		if _, err := protoregistry.GlobalFiles.FindDescriptorByName(protoreflect.FullName(name)); err == nil {
			out[name] = info
		}
	}
	return out
}

// toStatus maps domain errors onto gRPC codes; anything else is Internal.
func toStatus(err error, op string) error {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return status.Error(codes.InvalidArgument, errs.Message(err, "invalid argument"))
	case errors.Is(err, errs.ErrNotFound):
		return status.Error(codes.NotFound, errs.Message(err, "not found"))
	case errors.Is(err, errs.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, errs.Message(err, "already exists"))
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, op+": canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, op+": deadline exceeded")
	default:
		return status.Errorf(codes.Internal, "%s: %v", op, err)
	}
}

// --- Boards ---

// CreateBoard creates an empty board.
func (s *Server) CreateBoard(ctx context.Context, req *api.CreateBoardRequest) (*api.Board, error) {
	b, err := s.svc.CreateBoard(ctx, req.Name)
	if err != nil {
		return nil, toStatus(err, "create board")
	}
	return convert.ToAPIBoard(b), nil
}

// GetBoard returns a board with all its cards.
func (s *Server) GetBoard(ctx context.Context, req *api.GetBoardRequest) (*api.Board, error) {
	b, err := s.svc.GetBoard(ctx, req.BoardID)
	if err != nil {
		return nil, toStatus(err, "get board")
	}
	return convert.ToAPIBoard(b), nil
}

// RenameBoard changes the board name.
func (s *Server) RenameBoard(ctx context.Context, req *api.RenameBoardRequest) (*api.Board, error) {
	b, err := s.svc.RenameBoard(ctx, req.BoardID, req.Name)
	if err != nil {
		return nil, toStatus(err, "rename board")
	}
	return convert.ToAPIBoard(b), nil
}

// DeleteBoard removes a board and its cards.
func (s *Server) DeleteBoard(ctx context.Context, req *api.DeleteBoardRequest) (*api.DeleteBoardResponse, error) {
	if err := s.svc.DeleteBoard(ctx, req.BoardID); err != nil {
		return nil, toStatus(err, "delete board")
	}
	return &api.DeleteBoardResponse{}, nil
}

// --- Cards ---

func (s *Server) AddCard(ctx context.Context, req *api.AddCardRequest) (*api.Board, error) {
	b, err := s.svc.AddCard(ctx, req.BoardID, model.ColumnKey(req.Column), req.Title, req.Description)
	if err != nil {
		return nil, toStatus(err, "add card")
	}
	return convert.ToAPIBoard(b), nil
}

func (s *Server) MoveCard(ctx context.Context, req *api.MoveCardRequest) (*api.Board, error) {
	b, err := s.svc.MoveCard(ctx, req.BoardID, req.CardID, convert.FromAPIPosition(req.From), convert.FromAPIPosition(req.To))
	if err != nil {
		return nil, toStatus(err, "move card")
	}
	return convert.ToAPIBoard(b), nil
}

func (s *Server) UpdateCard(ctx context.Context, req *api.UpdateCardRequest) (*api.Board, error) {
	b, err := s.svc.UpdateCard(ctx, req.BoardID, req.CardID, service.CardPatch{Title: req.Title, Description: req.Description})
	if err != nil {
		return nil, toStatus(err, "update card")
	}
	return convert.ToAPIBoard(b), nil
}

func (s *Server) DeleteCard(ctx context.Context, req *api.DeleteCardRequest) (*api.Board, error) {
	b, err := s.svc.DeleteCard(ctx, req.BoardID, req.CardID)
	if err != nil {
		return nil, toStatus(err, "delete card")
	}
	return convert.ToAPIBoard(b), nil
}
