package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/and161185/kanban/internal/api"
	"github.com/and161185/kanban/internal/model"
	"github.com/and161185/kanban/internal/repository/memory"
	grpcserver "github.com/and161185/kanban/internal/server/grpc"
	"github.com/and161185/kanban/internal/service"
)

func withTmpConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func bufDialer(t *testing.T) dialFunc {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	app := grpcserver.New(service.NewBoardService(memory.NewBoardRepo(), nil))
	gs, _ := grpcserver.NewGRPCServer(app, zap.NewNop(), false)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(func() { gs.Stop(); _ = lis.Close() })

	return func(ctx context.Context, _ string) (grpc.ClientConnInterface, func(), error) {
		//nolint:staticcheck // DialContext is supported through 1.x; migrate when grpc.NewClient is stable
		cc, err := grpc.DialContext(ctx, "bufnet",
			grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return lis.Dial() }),
			grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, nil, err
		}
		return cc, func() { _ = cc.Close() }, nil
	}
}

func run(t *testing.T, dial dialFunc, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := newApp(&out)
	a.dial = dial
	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dial dialFunc, args ...string) string {
	t.Helper()
	out, err := run(t, dial, args...)
	if err != nil {
		t.Fatalf("kb %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func boardJSON(t *testing.T, dial dialFunc, args ...string) api.Board {
	t.Helper()
	out := mustRun(t, dial, append(args, "--json")...)
	var b api.Board
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return b
}

func TestCLI_BoardFlow(t *testing.T) {
	withTmpConfig(t)
	dial := bufDialer(t)

	out := mustRun(t, dial, "board", "create", "Sprint 1")
	for _, want := range []string{"Sprint 1", "TO DO (0)", "IN PROGRESS (0)", "DONE (0)", "(empty)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("create output missing %q:\n%s", want, out)
		}
	}
	id, err := loadCurrent()
	if err != nil || len(id) != 8 {
		t.Fatalf("created board not selected: %q %v", id, err)
	}

	b := boardJSON(t, dial, "board", "rename", "Sprint 2")
	if b.Name != "Sprint 2" || b.BoardID != id {
		t.Fatalf("rename: %+v", b)
	}

	out = mustRun(t, dial, "board", "delete")
	if !strings.Contains(out, "deleted board "+id) {
		t.Fatalf("delete output: %s", out)
	}
	if _, err := loadCurrent(); err == nil {
		t.Fatalf("deleted board must be deselected")
	}
	if _, err := run(t, dial, "board", "show", "--board", id); err == nil || !strings.Contains(err.Error(), "Board not found") {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestCLI_CardFlow(t *testing.T) {
	withTmpConfig(t)
	dial := bufDialer(t)
	mustRun(t, dial, "board", "create", "b")

	mustRun(t, dial, "card", "add", "A", "-d", "first")
	mustRun(t, dial, "card", "add", "B")
	b := boardJSON(t, dial, "card", "add", "C", "--column", "INPROGRESS")
	if len(b.Columns.ToDo) != 2 || len(b.Columns.InProgress) != 1 {
		t.Fatalf("cards: %+v", b.Columns)
	}
	a, c := b.Columns.ToDo[0], b.Columns.InProgress[0]

	b = boardJSON(t, dial, "card", "move", a.ID, "--to", "inProgress:0")
	if b.Columns.InProgress[0].ID != a.ID || len(b.Columns.ToDo) != 1 {
		t.Fatalf("move to index: %+v", b.Columns)
	}

	b = boardJSON(t, dial, "card", "move", a.ID, "--to", "inProgress")
	if got := b.Columns.InProgress; got[0].ID != c.ID || got[1].ID != a.ID {
		t.Fatalf("same-column move to end: %+v", got)
	}

	b = boardJSON(t, dial, "card", "edit", a.ID, "--description", "")
	if got := b.Columns.InProgress[1]; got.Title != "A" || got.Description != "" {
		t.Fatalf("edit description only: %+v", got)
	}
	b = boardJSON(t, dial, "card", "edit", a.ID, "--title", "A2")
	if got := b.Columns.InProgress[1]; got.Title != "A2" {
		t.Fatalf("edit title: %+v", got)
	}

	out := mustRun(t, dial, "board", "show")
	if !strings.Contains(out, "IN PROGRESS (2)") || !strings.Contains(out, "A2") {
		t.Fatalf("show output:\n%s", out)
	}

	b = boardJSON(t, dial, "card", "rm", a.ID)
	if len(b.Columns.InProgress) != 1 {
		t.Fatalf("rm: %+v", b.Columns)
	}
}

func TestCLI_Errors(t *testing.T) {
	withTmpConfig(t)
	dial := bufDialer(t)

	if _, err := run(t, dial, "board", "show"); err != errNoCurrent {
		t.Fatalf("want errNoCurrent, got %v", err)
	}
	mustRun(t, dial, "board", "create", "b")

	if _, err := run(t, dial, "card", "add", "x", "--column", "review"); err == nil {
		t.Fatalf("want unknown column error")
	}
	if _, err := run(t, dial, "card", "add", "  "); err == nil || !strings.Contains(err.Error(), "Title is required") {
		t.Fatalf("want title error, got %v", err)
	}
	if _, err := run(t, dial, "card", "move", "ghost", "--to", "done"); err == nil {
		t.Fatalf("want error for unknown card")
	}
	if _, err := run(t, dial, "card", "move", "ghost"); err == nil {
		t.Fatalf("want error for missing --to")
	}
}

func Test_parseSlot(t *testing.T) {
	tests := []struct {
		in   string
		col  model.ColumnKey
		idx  int
		fail bool
	}{
		{"done", model.ColumnDone, -1, false},
		{"todo:3", model.ColumnToDo, 3, false},
		{"inProgress:0", model.ColumnInProgress, 0, false},
		{"review", "", 0, true},
		{"done:x", "", 0, true},
		{"done:-1", "", 0, true},
	}
	for _, tt := range tests {
		col, idx, err := parseSlot(tt.in)
		if tt.fail {
			if err == nil {
				t.Errorf("parseSlot(%q): want error", tt.in)
			}
			continue
		}
		if err != nil || col != tt.col || idx != tt.idx {
			t.Errorf("parseSlot(%q) = %q, %d, %v", tt.in, col, idx, err)
		}
	}
}

func Test_currentBoard_SaveLoadClear(t *testing.T) {
	withTmpConfig(t)

	if _, err := loadCurrent(); err != errNoCurrent {
		t.Fatalf("want errNoCurrent, got %v", err)
	}
	if err := saveCurrent("abcd1234"); err != nil {
		t.Fatalf("saveCurrent: %v", err)
	}
	if id, err := loadCurrent(); err != nil || id != "abcd1234" {
		t.Fatalf("loadCurrent = %q, %v", id, err)
	}
	if err := clearCurrent(); err != nil {
		t.Fatalf("clearCurrent: %v", err)
	}
	if err := clearCurrent(); err != nil {
		t.Fatalf("second clear must be a no-op: %v", err)
	}
}

func Test_renderBoard(t *testing.T) {
	b := model.NewBoard("abcd1234", "Plan", time.Now())
	b.Columns.Done = []model.Card{{ID: "card000001", Title: "Ship", Description: "v1"}}
	var buf bytes.Buffer
	renderBoard(&buf, b)
	out := buf.String()
	for _, want := range []string{"Plan", "abcd1234", "DONE (1)", "0. Ship", "card000001", "v1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
}
