package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/mathnote/internal/cli"
	"github.com/Veraticus/mathnote/internal/config"
	"github.com/Veraticus/mathnote/internal/storage"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize sales, expenses and open credits",
		Long: `Summarize the ledger between two dates, inclusive. Both default to
today. Open credit totals are as of the end date.`,
		Example: `  mathnote report
  mathnote report --from 2024-03-01 --to 2024-03-31`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}

	cmd.Flags().String("from", "", "first day of the report (format: 2006-01-02, default: today)")
	cmd.Flags().String("to", "", "last day of the report (format: 2006-01-02, default: today)")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	start, err := dateFlagOr(cmd, "from", today())
	if err != nil {
		return err
	}
	end, err := dateFlagOr(cmd, "to", today())
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("--to %s is before --from %s", cli.FormatDate(end), cli.FormatDate(start))
	}

	return withStorage(cmd, func(ctx context.Context, _ *config.Settings, store *storage.SQLiteStorage) error {
		summary, err := store.GetSummary(ctx, start, end)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderSummary(summary))
		return nil
	})
}
