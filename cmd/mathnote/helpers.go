package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/mathnote/internal/cli"
	"github.com/Veraticus/mathnote/internal/config"
	"github.com/Veraticus/mathnote/internal/ledger"
	"github.com/Veraticus/mathnote/internal/magicnote"
	"github.com/Veraticus/mathnote/internal/model"
	"github.com/Veraticus/mathnote/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func loadSettings() (*config.Settings, error) {
	return config.Load(viper.GetViper())
}

// initStorage opens the ledger and brings its schema up to date.
func initStorage(ctx context.Context, settings *config.Settings) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(settings.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func newParser(settings *config.Settings) (*magicnote.Parser, error) {
	return magicnote.NewParser(
		magicnote.WithCategoryKeywords(settings.CategoryKeywords),
		magicnote.WithLogger(slog.Default()),
	)
}

func newRecorder(settings *config.Settings) *ledger.Recorder {
	return ledger.NewRecorder(
		ledger.WithDefaultParty(settings.DefaultParty),
		ledger.WithLogger(slog.Default()),
	)
}

// dateFlag reads an optional YYYY-MM-DD flag.
func dateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := cli.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q, expected %s: %w", name, raw, cli.DateFormat, err)
	}
	return &t, nil
}

// dateFlagOr reads a date flag, defaulting to def.
func dateFlagOr(cmd *cobra.Command, name string, def time.Time) (time.Time, error) {
	t, err := dateFlag(cmd, name)
	if err != nil || t == nil {
		return def, err
	}
	return *t, nil
}

// addFilterFlags registers the flags read by ledgerFilter.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "only entries on or after this date (format: 2006-01-02)")
	cmd.Flags().String("to", "", "only entries on or before this date (format: 2006-01-02)")
	cmd.Flags().String("party", "", "only entries for this party (case-insensitive)")
	cmd.Flags().Int("limit", 50, "maximum number of entries to show (0 for all)")
}

func ledgerFilter(cmd *cobra.Command) (model.LedgerFilter, error) {
	var filter model.LedgerFilter
	var err error

	if filter.StartDate, err = dateFlag(cmd, "from"); err != nil {
		return filter, err
	}
	if filter.EndDate, err = dateFlag(cmd, "to"); err != nil {
		return filter, err
	}
	filter.Party, _ = cmd.Flags().GetString("party")
	filter.Limit, _ = cmd.Flags().GetInt("limit")
	return filter, nil
}

// withStorage loads settings, opens the ledger and runs fn.
func withStorage(cmd *cobra.Command, fn func(ctx context.Context, settings *config.Settings, store *storage.SQLiteStorage) error) error {
	ctx := cmd.Context()

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	return fn(ctx, settings, store)
}

// noteArg joins positional arguments into one note.
func noteArg(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
