package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "kanban.v1.BoardService"

// Full method names.
const (
	MethodCreateBoard = "/" + ServiceName + "/CreateBoard"
	MethodGetBoard    = "/" + ServiceName + "/GetBoard"
	MethodRenameBoard = "/" + ServiceName + "/RenameBoard"
	MethodDeleteBoard = "/" + ServiceName + "/DeleteBoard"
	MethodAddCard     = "/" + ServiceName + "/AddCard"
	MethodMoveCard    = "/" + ServiceName + "/MoveCard"
	MethodUpdateCard  = "/" + ServiceName + "/UpdateCard"
	MethodDeleteCard  = "/" + ServiceName + "/DeleteCard"
)

// BoardServiceServer is the server API for kanban.v1.BoardService.
type BoardServiceServer interface {
	CreateBoard(context.Context, *CreateBoardRequest) (*Board, error)
	GetBoard(context.Context, *GetBoardRequest) (*Board, error)
	RenameBoard(context.Context, *RenameBoardRequest) (*Board, error)
	DeleteBoard(context.Context, *DeleteBoardRequest) (*DeleteBoardResponse, error)
	AddCard(context.Context, *AddCardRequest) (*Board, error)
	MoveCard(context.Context, *MoveCardRequest) (*Board, error)
	UpdateCard(context.Context, *UpdateCardRequest) (*Board, error)
	DeleteCard(context.Context, *DeleteCardRequest) (*Board, error)
}

// RegisterBoardServiceServer registers srv on s.
func RegisterBoardServiceServer(s grpc.ServiceRegistrar, srv BoardServiceServer) {
	s.RegisterService(&BoardService_ServiceDesc, srv)
}

// unary adapts a typed method to grpc.MethodDesc's handler shape.
func unary[Req any, Resp any](full string, call func(BoardServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BoardServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BoardServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// BoardService_ServiceDesc describes kanban.v1.BoardService for grpc.Server.
var BoardService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BoardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateBoard", Handler: unary(MethodCreateBoard, BoardServiceServer.CreateBoard)},
		{MethodName: "GetBoard", Handler: unary(MethodGetBoard, BoardServiceServer.GetBoard)},
		{MethodName: "RenameBoard", Handler: unary(MethodRenameBoard, BoardServiceServer.RenameBoard)},
		{MethodName: "DeleteBoard", Handler: unary(MethodDeleteBoard, BoardServiceServer.DeleteBoard)},
		{MethodName: "AddCard", Handler: unary(MethodAddCard, BoardServiceServer.AddCard)},
		{MethodName: "MoveCard", Handler: unary(MethodMoveCard, BoardServiceServer.MoveCard)},
		{MethodName: "UpdateCard", Handler: unary(MethodUpdateCard, BoardServiceServer.UpdateCard)},
		{MethodName: "DeleteCard", Handler: unary(MethodDeleteCard, BoardServiceServer.DeleteCard)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kanban/v1/board",
}

// BoardServiceClient is the client API for kanban.v1.BoardService.
type BoardServiceClient interface {
	CreateBoard(ctx context.Context, in *CreateBoardRequest, opts ...grpc.CallOption) (*Board, error)
	GetBoard(ctx context.Context, in *GetBoardRequest, opts ...grpc.CallOption) (*Board, error)
	RenameBoard(ctx context.Context, in *RenameBoardRequest, opts ...grpc.CallOption) (*Board, error)
	DeleteBoard(ctx context.Context, in *DeleteBoardRequest, opts ...grpc.CallOption) (*DeleteBoardResponse, error)
	AddCard(ctx context.Context, in *AddCardRequest, opts ...grpc.CallOption) (*Board, error)
	MoveCard(ctx context.Context, in *MoveCardRequest, opts ...grpc.CallOption) (*Board, error)
	UpdateCard(ctx context.Context, in *UpdateCardRequest, opts ...grpc.CallOption) (*Board, error)
	DeleteCard(ctx context.Context, in *DeleteCardRequest, opts ...grpc.CallOption) (*Board, error)
}

type boardServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBoardServiceClient returns a client that always speaks the JSON codec.
func NewBoardServiceClient(cc grpc.ClientConnInterface) BoardServiceClient {
	return &boardServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *boardServiceClient) CreateBoard(ctx context.Context, in *CreateBoardRequest, opts ...grpc.CallOption) (*Board, error) {
	return invoke[Board](ctx, c.cc, MethodCreateBoard, in, opts)
}

func (c *boardServiceClient) GetBoard(ctx context.Context, in *GetBoardRequest, opts ...grpc.CallOption) (*Board, error) {
	return invoke[Board](ctx, c.cc, MethodGetBoard, in, opts)
}

func (c *boardServiceClient) RenameBoard(ctx context.Context, in *RenameBoardRequest, opts ...grpc.CallOption) (*Board, error) {
	return invoke[Board](ctx, c.cc, MethodRenameBoard, in, opts)
}

func (c *boardServiceClient) DeleteBoard(ctx context.Context, in *DeleteBoardRequest, opts ...grpc.CallOption) (*DeleteBoardResponse, error) {
	return invoke[DeleteBoardResponse](ctx, c.cc, MethodDeleteBoard, in, opts)
}

func (c *boardServiceClient) AddCard(ctx context.Context, in *AddCardRequest, opts ...grpc.CallOption) (*Board, error) {
	return invoke[Board](ctx, c.cc, MethodAddCard, in, opts)
}

func (c *boardServiceClient) MoveCard(ctx context.Context, in *MoveCardRequest, opts ...grpc.CallOption) (*Board, error) {
	return invoke[Board](ctx, c.cc, MethodMoveCard, in, opts)
}

func (c *boardServiceClient) UpdateCard(ctx context.Context, in *UpdateCardRequest, opts ...grpc.CallOption) (*Board, error) {
	return invoke[Board](ctx, c.cc, MethodUpdateCard, in, opts)
}

func (c *boardServiceClient) DeleteCard(ctx context.Context, in *DeleteCardRequest, opts ...grpc.CallOption) (*Board, error) {
	return invoke[Board](ctx, c.cc, MethodDeleteCard, in, opts)
}
