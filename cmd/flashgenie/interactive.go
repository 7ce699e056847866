package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/flashgenie/internal/tui"
)

func runInteractive(cmd *cobra.Command, flags *rootFlags) error {
	app, err := newAppContext(cmd.Context(), flags, cmd.ErrOrStderr(), sinkFile)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	ctx, logger := app.CommandContext(cmd, "command.interactive")
	logger.Info(ctx, "launching interactive session", "theme", app.Theme.Theme().String())

	model := tui.NewModel(ctx, app.Controller, app.Generator, app.Theme)
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		logger.Error(ctx, "interactive session failed", "error", err)
		return fmt.Errorf("interactive session failed: %w", err)
	}

	logger.Info(ctx, "interactive session ended")
	return nil
}
