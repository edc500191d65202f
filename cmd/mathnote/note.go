package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/mathnote/internal/cli"
	"github.com/Veraticus/mathnote/internal/config"
	"github.com/Veraticus/mathnote/internal/storage"
	"github.com/spf13/cobra"
)

func noteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note <note>",
		Short: "Parse a Magic Note and save it to the ledger",
		Long: `Parse a Magic Note, show what was understood and save it after
confirmation.

Examples of notes:
  Sold 50*8 to Shop
  Sold 1000 to Rahul advance 200 UPI
  Spent 200 on Lunch
  Lent 1000 to Ajay cash`,
		Args: cobra.MinimumNArgs(1),
		RunE: runNote,
	}

	cmd.Flags().BoolP("yes", "y", false, "save without asking for confirmation")
	cmd.Flags().Bool("dry-run", false, "show what would be saved without saving")
	cmd.Flags().String("date", "", "date of the entry (format: 2006-01-02, default: today)")

	return cmd
}

func runNote(cmd *cobra.Command, args []string) error {
	date, err := dateFlagOr(cmd, "date", today())
	if err != nil {
		return err
	}
	yes, _ := cmd.Flags().GetBool("yes")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	return withStorage(cmd, func(ctx context.Context, settings *config.Settings, store *storage.SQLiteStorage) error {
		parser, err := newParser(settings)
		if err != nil {
			return err
		}

		parsed, err := parser.Parse(noteArg(args))
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatParseFailure(err))
			return fmt.Errorf("%w: %w", errNoteNotUnderstood, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, cli.RenderParsed(parsed, settings.DefaultParty))

		if dryRun {
			fmt.Fprintln(out, cli.FormatWarning("Dry run - nothing saved"))
			return nil
		}

		if !yes {
			ok, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), out, "Save this entry?")
			if err != nil {
				if errors.Is(err, cli.ErrInputCancelled) {
					return ctx.Err()
				}
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			if !ok {
				fmt.Fprintln(out, cli.FormatInfo("Not saved"))
				return nil
			}
		}

		entry, err := newRecorder(settings).Record(ctx, store, parsed, date)
		if err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}

		fmt.Fprintln(out, cli.FormatRecorded(parsed, entry.ID()))
		return nil
	})
}
