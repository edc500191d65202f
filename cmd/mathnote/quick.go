package main

import (
	"context"

	"github.com/Veraticus/mathnote/internal/config"
	"github.com/Veraticus/mathnote/internal/storage"
	"github.com/Veraticus/mathnote/internal/tui"
	"github.com/spf13/cobra"
)

func quickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quick",
		Short: "Interactive quick entry with a live preview",
		Long: `Open the quick-entry screen. Type a note and watch it parse as you
type, press Enter to review it and y to save.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStorage(cmd, func(ctx context.Context, settings *config.Settings, store *storage.SQLiteStorage) error {
				parser, err := newParser(settings)
				if err != nil {
					return err
				}
				return tui.Run(ctx,
					tui.WithStorage(store),
					tui.WithParser(parser),
					tui.WithRecorder(newRecorder(settings), settings.DefaultParty),
				)
			})
		},
	}
}
