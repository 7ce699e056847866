package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
)

func newThemeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the current light/dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), flags, cmd.ErrOrStderr(), sinkConsole)
			if err != nil {
				return err
			}
			defer app.Close(context.Background())

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", app.Theme.Theme(), app.Theme.Source())
			return nil
		},
	}

	cmd.AddCommand(newThemeSetCmd(flags))
	return cmd
}

func newThemeSetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Choose the light or dark theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), flags, cmd.ErrOrStderr(), sinkConsole)
			if err != nil {
				return err
			}
			defer app.Close(context.Background())

			ctx, _ := app.CommandContext(cmd, "command.theme.set")
			if err := app.Theme.SetTheme(ctx, args[0]); err != nil {
				if errors.Is(err, flashcard.ErrThemeInput) {
					return fmt.Errorf("theme must be \"light\" or \"dark\", got %q", args[0])
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", app.Theme.Theme())
			return nil
		},
	}
}
