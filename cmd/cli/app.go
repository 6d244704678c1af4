package main

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/and161185/kanban/internal/client"
)

// dialFunc opens a connection to addr; the returned func closes it.
type dialFunc func(ctx context.Context, addr string) (grpc.ClientConnInterface, func(), error)

type app struct {
	addr    string
	timeout time.Duration
	board   string
	jsonOut bool

	out  io.Writer
	dial dialFunc
}

func newApp(out io.Writer) *app {
	return &app{out: out, dial: dialInsecure}
}

func dialInsecure(ctx context.Context, addr string) (grpc.ClientConnInterface, func(), error) {
	//nolint:staticcheck // DialContext is supported through 1.x; migrate when grpc.NewClient is stable
	cc, err := grpc.DialContext(ctx, addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	return cc, func() { _ = cc.Close() }, nil
}

func (a *app) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.timeout)
}

// remote dials the server and returns a client plus its closer.
func (a *app) remote(ctx context.Context) (client.Remote, func(), error) {
	cc, closeFn, err := a.dial(ctx, a.addr)
	if err != nil {
		return nil, nil, err
	}
	return client.NewGRPCRemote(cc), closeFn, nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
