package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/and161185/kanban/internal/client"
	"github.com/and161185/kanban/internal/model"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "kb",
		Short:         "Terminal client for the kanban board service",
		Version:       fmt.Sprintf("%s (built %s)", version, buildDate),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(a.out)
	root.PersistentFlags().StringVar(&a.addr, "addr", "localhost:9090", "gRPC server address")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 10*time.Second, "per-command timeout")
	root.PersistentFlags().StringVar(&a.board, "board", "", "board id (defaults to the selected board)")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print boards as JSON")

	root.AddCommand(newBoardCmd(a), newCardCmd(a))
	return root
}

// boardID resolves --board or the remembered board.
func (a *app) boardID() (string, error) {
	if a.board != "" {
		return a.board, nil
	}
	return loadCurrent()
}

// withStore loads the selected board into a store and runs fn against it.
func (a *app) withStore(cmd *cobra.Command, fn func(ctx context.Context, s *client.Store) error) error {
	id, err := a.boardID()
	if err != nil {
		return err
	}
	ctx, cancel := a.withTimeout(cmd.Context())
	defer cancel()

	r, closeFn, err := a.remote(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	s := client.NewStore(r)
	if err := s.Load(ctx, id); err != nil {
		return err
	}
	if err := fn(ctx, s); err != nil {
		return err
	}
	if b := s.Current(); b != nil {
		return a.show(b)
	}
	return nil
}

func newBoardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "board", Short: "Create, show, rename and delete boards"}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a board and select it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()
			r, closeFn, err := a.remote(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			s := client.NewStore(r)
			if err := s.Create(ctx, args[0]); err != nil {
				return err
			}
			b := s.Current()
			if err := saveCurrent(b.BoardID); err != nil {
				return err
			}
			return a.show(b)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "use <boardId>",
		Short: "Select the board later commands apply to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.board = args[0]
			return a.withStore(cmd, func(context.Context, *client.Store) error {
				return saveCurrent(args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the selected board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd, func(context.Context, *client.Store) error { return nil })
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the selected board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s *client.Store) error {
				return s.Rename(ctx, args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Delete the selected board and all its cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.boardID()
			if err != nil {
				return err
			}
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()
			r, closeFn, err := a.remote(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := client.NewStore(r).Delete(ctx, id); err != nil {
				return err
			}
			if cur, err := loadCurrent(); err == nil && cur == id {
				if err := clearCurrent(); err != nil {
					return err
				}
			}
			fmt.Fprintf(a.out, "deleted board %s\n", id)
			return nil
		},
	})
	return cmd
}

func newCardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "card", Short: "Add, move, edit and remove cards"}

	var (
		column string
		desc   string
	)
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Append a card to a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := model.ParseColumn(column)
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, s *client.Store) error {
				return s.AddCard(ctx, key, args[0], desc)
			})
		},
	}
	add.Flags().StringVarP(&column, "column", "c", string(model.ColumnToDo), "toDo|inProgress|done")
	add.Flags().StringVarP(&desc, "description", "d", "", "card description")
	cmd.AddCommand(add)

	var to string
	move := &cobra.Command{
		Use:   "move <cardId>",
		Short: "Move a card to column[:index] (default: end of column)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, idx, err := parseSlot(to)
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, s *client.Store) error {
				from, ok := s.Current().FindCard(args[0])
				if !ok {
					return fmt.Errorf("card %s is not on this board", args[0])
				}
				if idx < 0 {
					idx = len(s.Current().Columns.Cards(key))
					if key == from.Column {
						idx--
					}
				}
				return s.MoveCard(ctx, args[0], from, model.Position{Column: key, Index: idx})
			})
		},
	}
	move.Flags().StringVarP(&to, "to", "t", "", "destination column[:index]")
	_ = move.MarkFlagRequired("to")
	cmd.AddCommand(move)

	var (
		newTitle string
		newDesc  string
	)
	edit := &cobra.Command{
		Use:   "edit <cardId>",
		Short: "Change a card's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s *client.Store) error {
				t := newTitle
				if !cmd.Flags().Changed("title") {
					pos, ok := s.Current().FindCard(args[0])
					if !ok {
						return fmt.Errorf("card %s is not on this board", args[0])
					}
					t = s.Current().CardAt(pos).Title
				}
				var d *string
				if cmd.Flags().Changed("description") {
					d = &newDesc
				}
				return s.UpdateCard(ctx, args[0], t, d)
			})
		},
	}
	edit.Flags().StringVar(&newTitle, "title", "", "new title")
	edit.Flags().StringVarP(&newDesc, "description", "d", "", "new description (empty clears it)")
	cmd.AddCommand(edit)

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <cardId>",
		Aliases: []string{"delete"},
		Short:   "Remove a card",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s *client.Store) error {
				return s.DeleteCard(ctx, args[0])
			})
		},
	})
	return cmd
}
