package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/reorder"
)

func newPrintCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "print",
		Aliases: []string{"ls"},
		Short:   "Print the list",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.client()
			if err != nil {
				return err
			}
			todos, err := app.sorted(cmd.Context(), c)
			if err != nil {
				return err
			}
			app.printer.List(todos, group)
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group output by pending/done")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <content...>",
		Short: "Add an item at the end of the list",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.TrimSpace(strings.Join(args, " "))
			if content == "" {
				return usagef("add: empty content")
			}
			c, err := app.client()
			if err != nil {
				return err
			}
			if _, err := c.Create(cmd.Context(), content); err != nil {
				return fmt.Errorf("add: %w", err)
			}
			app.printer.OK("added")
			return nil
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle completion of the item at a 1-based index",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.client()
			if err != nil {
				return err
			}
			todos, err := app.sorted(cmd.Context(), c)
			if err != nil {
				return err
			}
			i, err := parseIndex("done", args[0], len(todos))
			if err != nil {
				return err
			}
			t, err := c.Toggle(cmd.Context(), todos[i].ID)
			if err != nil {
				return fmt.Errorf("done: %w", err)
			}
			if t.Completed {
				app.printer.OK("completed")
			} else {
				app.printer.OK("reopened")
			}
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <content...>",
		Short: "Replace the text of the item at a 1-based index",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.TrimSpace(strings.Join(args[1:], " "))
			if content == "" {
				return usagef("edit: empty content, nothing changed")
			}
			c, err := app.client()
			if err != nil {
				return err
			}
			todos, err := app.sorted(cmd.Context(), c)
			if err != nil {
				return err
			}
			i, err := parseIndex("edit", args[0], len(todos))
			if err != nil {
				return err
			}
			t := todos[i]
			t.Content = content
			if _, err := c.Replace(cmd.Context(), t); err != nil {
				return fmt.Errorf("edit: %w", err)
			}
			app.printer.OK("edited")
			return nil
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"delete"},
		Short:   "Remove the item at a 1-based index",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.client()
			if err != nil {
				return err
			}
			todos, err := app.sorted(cmd.Context(), c)
			if err != nil {
				return err
			}
			i, err := parseIndex("rm", args[0], len(todos))
			if err != nil {
				return err
			}
			if err := c.Delete(cmd.Context(), todos[i].ID); err != nil {
				return fmt.Errorf("rm: %w", err)
			}
			app.printer.OK("removed")
			return nil
		},
	}
}

func newMvCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <from> <to>",
		Short: "Move an item and renumber every position",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.client()
			if err != nil {
				return err
			}
			todos, err := app.sorted(cmd.Context(), c)
			if err != nil {
				return err
			}
			from, err := parseIndex("mv", args[0], len(todos))
			if err != nil {
				return err
			}
			to, err := parseIndex("mv", args[1], len(todos))
			if err != nil {
				return err
			}
			order, err := reorder.Move(model.IDs(todos), from, to)
			if err != nil {
				return fmt.Errorf("mv: %w", err)
			}
			if err := reorder.Persist(cmd.Context(), c, reorder.Assign(order)); err != nil {
				return fmt.Errorf("mv: %w", err)
			}
			app.printer.OK(fmt.Sprintf("moved %d to %d", from+1, to+1))
			return nil
		},
	}
}
