package main

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
	"github.com/alexisbeaulieu97/flashgenie/internal/render"
)

type generateOptions struct {
	format string
}

func newGenerateCmd(flags *rootFlags) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <topic or definition>",
		Short: "Generate flashcards once and print them",
		Long:  "Generate flashcards for a topic and print them as text, JSON, or YAML. Arguments are joined with spaces.",
		Example: `  flashgenie generate photosynthesis
  flashgenie generate "the krebs cycle" --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(opts.format)
			if err != nil {
				return err
			}

			app, err := newAppContext(cmd.Context(), flags, cmd.ErrOrStderr(), sinkConsole)
			if err != nil {
				return err
			}
			defer app.Close(context.Background())

			ctx, logger := app.CommandContext(cmd, "command.generate")
			state := app.Controller.Submit(ctx, strings.Join(args, " "))
			view := flashcard.Project(state)
			if view.HasError() {
				logger.Debug(ctx, "generate command finished without cards", "phase", string(view.Phase))
				return errors.New(view.ErrorMessage)
			}

			topic := ""
			if success, ok := state.(flashcard.Success); ok {
				topic = success.Topic
			}
			return render.Write(cmd.OutOrStdout(), format, topic, view.Cards)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(render.FormatText), "Output format: text, json, or yaml")

	return cmd
}
