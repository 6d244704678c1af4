// Package model defines the board and card entities and the structural edits on them.
package model

import "time"

// Board is a named container of three ordered card columns.
type Board struct {
	BoardID   string    `json:"boardId" bson:"boardId"`
	Name      string    `json:"name" bson:"name"`
	Columns   Columns   `json:"columns" bson:"columns"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// NewBoard returns a board with three empty columns stamped with now.
func NewBoard(boardID, name string, now time.Time) *Board {
	return &Board{
		BoardID: boardID,
		Name:    name,
		Columns: Columns{
			ToDo:       []Card{},
			InProgress: []Card{},
			Done:       []Card{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy; the card slices never share backing arrays with b.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	cp := *b
	cp.Columns = Columns{
		ToDo:       append([]Card{}, b.Columns.ToDo...),
		InProgress: append([]Card{}, b.Columns.InProgress...),
		Done:       append([]Card{}, b.Columns.Done...),
	}
	return &cp
}

// FindCard scans toDo, inProgress, done in order and returns the first slot holding id.
func (b *Board) FindCard(id string) (Position, bool) {
	for _, key := range ColumnOrder {
		for i, c := range b.Columns.Cards(key) {
			if c.ID == id {
				return Position{Column: key, Index: i}, true
			}
		}
	}
	return Position{}, false
}

// CardAt returns a pointer into the board for in-place edits.
func (b *Board) CardAt(pos Position) *Card {
	s := b.Columns.slot(pos.Column)
	if s == nil || pos.Index < 0 || pos.Index >= len(*s) {
		return nil
	}
	return &(*s)[pos.Index]
}

// HasCard reports whether any column holds a card with id.
func (b *Board) HasCard(id string) bool {
	_, ok := b.FindCard(id)
	return ok
}

// CardIDs lists card ids column by column in declared order.
func (b *Board) CardIDs() []string {
	out := make([]string, 0, b.Columns.Total())
	for _, key := range ColumnOrder {
		for _, c := range b.Columns.Cards(key) {
			out = append(out, c.ID)
		}
	}
	return out
}
