package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/and161185/kanban/internal/convert"
	"github.com/and161185/kanban/internal/model"
)

var (
	title   = color.New(color.Bold)
	heading = color.New(color.FgCyan, color.Bold)
	faint   = color.New(color.Faint)

	headings = map[model.ColumnKey]string{
		model.ColumnToDo:       "TO DO",
		model.ColumnInProgress: "IN PROGRESS",
		model.ColumnDone:       "DONE",
	}
)

// renderBoard prints the board as three stacked columns.
func renderBoard(w io.Writer, b *model.Board) {
	title.Fprintf(w, "%s", b.Name)
	faint.Fprintf(w, "  [%s]\n", b.BoardID)
	for _, key := range model.ColumnOrder {
		cards := b.Columns.Cards(key)
		heading.Fprintf(w, "\n%s (%d)\n", headings[key], len(cards))
		if len(cards) == 0 {
			faint.Fprintln(w, "  (empty)")
			continue
		}
		for i, c := range cards {
			fmt.Fprintf(w, "  %d. %s  ", i, c.Title)
			faint.Fprintln(w, c.ID)
			if c.Description != "" {
				fmt.Fprintf(w, "     %s\n", c.Description)
			}
		}
	}
}

func (a *app) show(b *model.Board) error {
	if a.jsonOut {
		return a.printJSON(convert.ToAPIBoard(b))
	}
	renderBoard(a.out, b)
	return nil
}

// parseSlot reads "column" or "column:index". A missing index yields -1, meaning the end.
func parseSlot(s string) (model.ColumnKey, int, error) {
	col, idx, hasIdx := strings.Cut(s, ":")
	key, err := model.ParseColumn(col)
	if err != nil {
		return "", 0, err
	}
	if !hasIdx {
		return key, -1, nil
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return "", 0, fmt.Errorf("bad index %q in %q", idx, s)
	}
	return key, n, nil
}
