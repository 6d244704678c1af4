package model

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/and161185/kanban/internal/errs"
)

func TestNewBoard(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	b := NewBoard("abcd1234", "Sprint 1", now)

	if b.BoardID != "abcd1234" || b.Name != "Sprint 1" {
		t.Fatalf("unexpected board: %+v", b)
	}
	if !b.CreatedAt.Equal(now) || !b.UpdatedAt.Equal(now) {
		t.Errorf("timestamps not stamped with now")
	}
	for _, k := range ColumnOrder {
		if cs := b.Columns.Cards(k); cs == nil || len(cs) != 0 {
			t.Errorf("column %s should be empty and non-nil", k)
		}
	}
}

func TestFindCard_ScansInDeclaredOrder(t *testing.T) {
	b := &Board{Columns: Columns{
		ToDo:       cards("a"),
		InProgress: cards("b", "dup"),
		Done:       cards("dup"),
	}}

	pos, ok := b.FindCard("dup")
	if !ok {
		t.Fatal("dup not found")
	}
	if pos != (Position{ColumnInProgress, 1}) {
		t.Errorf("FindCard(dup) = %+v, want inProgress/1", pos)
	}

	if _, ok := b.FindCard("missing"); ok {
		t.Error("missing card reported as found")
	}
	if !b.HasCard("a") || b.HasCard("zzz") {
		t.Error("HasCard mismatch")
	}
}

func TestCardAt(t *testing.T) {
	b := &Board{Columns: sample()}
	c := b.CardAt(Position{ColumnToDo, 2})
	if c == nil || c.ID != "c" {
		t.Fatalf("CardAt = %+v", c)
	}
	c.Title = "edited"
	if b.Columns.ToDo[2].Title != "edited" {
		t.Error("CardAt must point into the board")
	}
	if b.CardAt(Position{ColumnDone, 0}) != nil || b.CardAt(Position{"x", 0}) != nil {
		t.Error("out-of-range slots must return nil")
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	b := &Board{BoardID: "b", Name: "n", Columns: sample()}
	cp := b.Clone()

	if !reflect.DeepEqual(b, cp) {
		t.Fatalf("clone differs: %+v vs %+v", b, cp)
	}
	cp.Columns.ToDo[0].Title = "changed"
	cp.Columns.InProgress = append(cp.Columns.InProgress, Card{ID: "z"})
	if b.Columns.ToDo[0].Title == "changed" || len(b.Columns.InProgress) != 1 {
		t.Error("clone shares state with original")
	}

	var nilBoard *Board
	if nilBoard.Clone() != nil {
		t.Error("nil clone should be nil")
	}
}

func TestNormalizeTitle(t *testing.T) {
	if got, err := NormalizeTitle("  Write docs  "); err != nil || got != "Write docs" {
		t.Errorf("NormalizeTitle = %q, %v", got, err)
	}
	for _, bad := range []string{"", "   ", "\t\n"} {
		if _, err := NormalizeTitle(bad); !errors.Is(err, errs.ErrValidation) {
			t.Errorf("NormalizeTitle(%q): want validation error, got %v", bad, err)
		}
	}

	exactly64 := strings.Repeat("a", 64)
	if _, err := NormalizeTitle(exactly64); err != nil {
		t.Errorf("64-char title returned error: %v", err)
	}
	if _, err := NormalizeTitle(exactly64 + "a"); !errors.Is(err, errs.ErrValidation) {
		t.Errorf("65-char title: want validation error, got %v", err)
	}
	// limits count characters, not bytes
	if _, err := NormalizeTitle(strings.Repeat("ж", 64)); err != nil {
		t.Errorf("64 two-byte runes returned error: %v", err)
	}
}

func TestValidateDescription(t *testing.T) {
	if err := ValidateDescription(""); err != nil {
		t.Errorf("empty description: %v", err)
	}
	if err := ValidateDescription(strings.Repeat("d", MaxDescriptionLen)); err != nil {
		t.Errorf("max description: %v", err)
	}
	if err := ValidateDescription(strings.Repeat("d", MaxDescriptionLen+1)); !errors.Is(err, errs.ErrValidation) {
		t.Errorf("long description: want validation error, got %v", err)
	}
}

func TestNormalizeBoardName(t *testing.T) {
	if got, err := NormalizeBoardName(" Sprint 1 "); err != nil || got != "Sprint 1" {
		t.Errorf("NormalizeBoardName = %q, %v", got, err)
	}
	if _, err := NormalizeBoardName("  "); !errors.Is(err, errs.ErrValidation) {
		t.Errorf("blank name: want validation error, got %v", err)
	}
	if _, err := NormalizeBoardName(strings.Repeat("n", 101)); !errors.Is(err, errs.ErrValidation) {
		t.Errorf("101-char name: want validation error, got %v", err)
	}
}
