package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/and161185/kanban/internal/errs"
)

// ColumnKey names one of the three fixed board columns.
type ColumnKey string

const (
	ColumnToDo       ColumnKey = "toDo"
	ColumnInProgress ColumnKey = "inProgress"
	ColumnDone       ColumnKey = "done"
)

// ColumnOrder is the declared column order used for card lookup and rendering.
var ColumnOrder = []ColumnKey{ColumnToDo, ColumnInProgress, ColumnDone}

// Valid reports whether k is one of the known column keys.
func (k ColumnKey) Valid() bool {
	switch k {
	case ColumnToDo, ColumnInProgress, ColumnDone:
		return true
	}
	return false
}

func (k ColumnKey) String() string { return string(k) }

// ParseColumn accepts a column key in its wire form, case-insensitively.
func ParseColumn(s string) (ColumnKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo":
		return ColumnToDo, nil
	case "inprogress":
		return ColumnInProgress, nil
	case "done":
		return ColumnDone, nil
	}
	return "", errs.Validation(fmt.Sprintf("Unknown column %q", s))
}

// Position addresses a card slot: a column and an index inside it.
type Position struct {
	Column ColumnKey `json:"column"`
	Index  int       `json:"index"`
}

// Columns holds the three ordered card sequences of a board.
type Columns struct {
	ToDo       []Card `json:"toDo" bson:"toDo"`
	InProgress []Card `json:"inProgress" bson:"inProgress"`
	Done       []Card `json:"done" bson:"done"`
}

// MarshalJSON always emits arrays, never null.
func (c Columns) MarshalJSON() ([]byte, error) {
	type plain Columns
	return json.Marshal(plain{
		ToDo:       nonNil(c.ToDo),
		InProgress: nonNil(c.InProgress),
		Done:       nonNil(c.Done),
	})
}

func nonNil(cards []Card) []Card {
	if cards == nil {
		return []Card{}
	}
	return cards
}

func (c *Columns) slot(key ColumnKey) *[]Card {
	switch key {
	case ColumnToDo:
		return &c.ToDo
	case ColumnInProgress:
		return &c.InProgress
	case ColumnDone:
		return &c.Done
	}
	return nil
}

// Cards returns the sequence stored under key (nil for unknown keys).
func (c *Columns) Cards(key ColumnKey) []Card {
	if s := c.slot(key); s != nil {
		return *s
	}
	return nil
}

// Len returns the number of cards in the column.
func (c *Columns) Len(key ColumnKey) int { return len(c.Cards(key)) }

// Total counts cards across all columns.
func (c *Columns) Total() int {
	return len(c.ToDo) + len(c.InProgress) + len(c.Done)
}

// Append adds card to the end of the column.
func (c *Columns) Append(key ColumnKey, card Card) error {
	s := c.slot(key)
	if s == nil {
		return errs.Validation(fmt.Sprintf("Unknown column %q", key))
	}
	*s = append(*s, card)
	return nil
}

// RemoveAt deletes and returns the card at pos.
func (c *Columns) RemoveAt(pos Position) (Card, error) {
	s := c.slot(pos.Column)
	if s == nil {
		return Card{}, errs.Validation(fmt.Sprintf("Unknown column %q", pos.Column))
	}
	if pos.Index < 0 || pos.Index >= len(*s) {
		return Card{}, errs.Validation("Index out of range")
	}
	card := (*s)[pos.Index]
	*s = append((*s)[:pos.Index], (*s)[pos.Index+1:]...)
	return card, nil
}

// MoveCard relocates the card at from to to.
//
// The card at from must carry cardID. For a move inside one column, to.Index
// addresses the sequence after the card has been taken out. Every check runs
// before anything changes, so on error the columns are untouched.
func (c *Columns) MoveCard(cardID string, from, to Position) error {
	src := c.slot(from.Column)
	if src == nil {
		return errs.Validation(fmt.Sprintf("Unknown column %q", from.Column))
	}
	dst := c.slot(to.Column)
	if dst == nil {
		return errs.Validation(fmt.Sprintf("Unknown column %q", to.Column))
	}
	if from.Index < 0 || from.Index >= len(*src) {
		return errs.Validation("Source index out of range")
	}
	if (*src)[from.Index].ID != cardID {
		return errs.Validation("Card mismatch")
	}

	limit := len(*dst)
	if from.Column == to.Column {
		limit = len(*src) - 1
	}
	if to.Index < 0 || to.Index > limit {
		return errs.Validation("Destination index out of range")
	}

	card := (*src)[from.Index]
	*src = append((*src)[:from.Index], (*src)[from.Index+1:]...)
	*dst = append(*dst, Card{})
	copy((*dst)[to.Index+1:], (*dst)[to.Index:])
	(*dst)[to.Index] = card
	return nil
}
