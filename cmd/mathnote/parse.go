package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Veraticus/mathnote/internal/cli"
	"github.com/spf13/cobra"
)

// errNoteNotUnderstood is returned after a parse failure has been explained.
var errNoteNotUnderstood = errors.New("note not understood")

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <note>",
		Short: "Show how a Magic Note is understood without saving it",
		Example: `  mathnote parse "Sold 50*8 to Shop"
  mathnote parse --json Spent 200 on Lunch`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}

	cmd.Flags().Bool("json", false, "print the parse result as JSON")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	parser, err := newParser(settings)
	if err != nil {
		return err
	}

	parsed, err := parser.Parse(noteArg(args))
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatParseFailure(err))
		return fmt.Errorf("%w: %w", errNoteNotUnderstood, err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := json.MarshalIndent(parsed, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderParsed(parsed, settings.DefaultParty))
	return nil
}
