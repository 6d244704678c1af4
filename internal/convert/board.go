// Package convert maps domain models to wire messages and back.
package convert

import (
	"fmt"
	"time"

	"github.com/and161185/kanban/internal/api"
	"github.com/and161185/kanban/internal/model"
)

// TimeLayout renders UTC timestamps with millisecond precision, e.g. 2025-01-02T03:04:05.000Z.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// --- helpers ---

func ts(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}

func parseTS(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// --- Card ---

// ToAPICard converts a domain card to its wire form.
func ToAPICard(c model.Card) api.Card {
	return api.Card{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   ts(c.CreatedAt),
		UpdatedAt:   ts(c.UpdatedAt),
	}
}

// FromAPICard parses a wire card.
func FromAPICard(in api.Card) (model.Card, error) {
	created, err := parseTS(in.CreatedAt)
	if err != nil {
		return model.Card{}, fmt.Errorf("card %s createdAt: %w", in.ID, err)
	}
	updated, err := parseTS(in.UpdatedAt)
	if err != nil {
		return model.Card{}, fmt.Errorf("card %s updatedAt: %w", in.ID, err)
	}
	return model.Card{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

func toAPICards(cs []model.Card) []api.Card {
	out := make([]api.Card, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToAPICard(c))
	}
	return out
}

func fromAPICards(col string, in []api.Card) ([]model.Card, error) {
	out := make([]model.Card, 0, len(in))
	for i, c := range in {
		m, err := FromAPICard(c)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", col, i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// --- Board ---

// ToAPIBoard converts a domain board; every column becomes a non-nil array.
func ToAPIBoard(b *model.Board) *api.Board {
	if b == nil {
		return nil
	}
	return &api.Board{
		BoardID: b.BoardID,
		Name:    b.Name,
		Columns: api.Columns{
			ToDo:       toAPICards(b.Columns.ToDo),
			InProgress: toAPICards(b.Columns.InProgress),
			Done:       toAPICards(b.Columns.Done),
		},
		CreatedAt: ts(b.CreatedAt),
		UpdatedAt: ts(b.UpdatedAt),
	}
}

// FromAPIBoard parses a wire board received by a client.
func FromAPIBoard(in *api.Board) (*model.Board, error) {
	if in == nil {
		return nil, fmt.Errorf("nil board")
	}
	var (
		b   = &model.Board{BoardID: in.BoardID, Name: in.Name}
		err error
	)
	if b.Columns.ToDo, err = fromAPICards(string(model.ColumnToDo), in.Columns.ToDo); err != nil {
		return nil, err
	}
	if b.Columns.InProgress, err = fromAPICards(string(model.ColumnInProgress), in.Columns.InProgress); err != nil {
		return nil, err
	}
	if b.Columns.Done, err = fromAPICards(string(model.ColumnDone), in.Columns.Done); err != nil {
		return nil, err
	}
	if b.CreatedAt, err = parseTS(in.CreatedAt); err != nil {
		return nil, fmt.Errorf("board createdAt: %w", err)
	}
	if b.UpdatedAt, err = parseTS(in.UpdatedAt); err != nil {
		return nil, fmt.Errorf("board updatedAt: %w", err)
	}
	return b, nil
}

// --- Position ---

// FromAPIPosition keeps the column key verbatim; unknown keys are rejected by the move itself.
func FromAPIPosition(p api.Position) model.Position {
	return model.Position{Column: model.ColumnKey(p.Column), Index: p.Index}
}

// ToAPIPosition converts a domain position to its wire form.
func ToAPIPosition(p model.Position) api.Position {
	return api.Position{Column: string(p.Column), Index: p.Index}
}
