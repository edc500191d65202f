package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/mathnote/internal/cli"
	"github.com/Veraticus/mathnote/internal/config"
	"github.com/Veraticus/mathnote/internal/importer"
	"github.com/Veraticus/mathnote/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import Magic Notes from a file, one per line",
		Long: `Import Magic Notes from a text file, one note per line. Use - to read
from standard input.

Blank lines and lines starting with # are skipped. A line may start with
a date (2006-01-02) to date that entry; other lines use --date.

All understood notes are saved together. Lines that could not be
understood are listed and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().IntP("workers", "w", 4, "number of parallel parsers")
	cmd.Flags().Bool("dry-run", false, "parse and report without saving")
	cmd.Flags().String("date", "", "date for lines without one (format: 2006-01-02, default: today)")
	cmd.Flags().Bool("no-progress", false, "hide the progress bar")

	_ = viper.BindPFlag(config.KeyWorkers, cmd.Flags().Lookup("workers"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	date, err := dateFlagOr(cmd, "date", today())
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	input, closeInput, err := openInput(cmd, args[0])
	if err != nil {
		return err
	}
	defer closeInput()

	return withStorage(cmd, func(ctx context.Context, settings *config.Settings, store *storage.SQLiteStorage) error {
		parser, err := newParser(settings)
		if err != nil {
			return err
		}

		handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
		ctx = handler.HandleInterrupts(ctx, "Nothing was saved. Run the import again to retry.")

		opts := importer.Options{
			Date:    date,
			Workers: settings.Workers,
			DryRun:  dryRun,
		}
		if !noProgress {
			opts.Progress = cli.ProgressFunc(cmd.ErrOrStderr(), "Parsing notes")
		}

		summary, err := importer.New(parser, newRecorder(settings), store).Run(ctx, input, opts)
		if err != nil {
			if errors.Is(err, importer.ErrNoNotes) {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("No notes found in "+args[0]))
				return nil
			}
			if handler.WasInterrupted() {
				return context.Canceled
			}
			return fmt.Errorf("import failed: %w", err)
		}

		printImportSummary(cmd.OutOrStdout(), summary, dryRun)
		return nil
	})
}

func openInput(cmd *cobra.Command, name string) (io.Reader, func(), error) {
	if name == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(config.ExpandPath(name))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return f, func() { _ = f.Close() }, nil
}

func printImportSummary(w io.Writer, summary *importer.Summary, dryRun bool) {
	for _, failure := range summary.Failures() {
		fmt.Fprintln(w, cli.FormatError(fmt.Sprintf("line %d: %s", failure.Line, failure.Text)))
		fmt.Fprintln(w, cli.SubtleStyle.Render("  "+failure.Err.Error()))
	}

	if dryRun {
		fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("Dry run: understood %d of %d notes, nothing saved", summary.Parsed, summary.Total)))
		return
	}

	msg := fmt.Sprintf("Saved %d of %d notes", summary.Recorded, summary.Total)
	if summary.Failed > 0 {
		fmt.Fprintln(w, cli.FormatWarning(msg))
		return
	}
	fmt.Fprintln(w, cli.FormatSuccess(msg))
}
