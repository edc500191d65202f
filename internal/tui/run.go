package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoStorage is returned by Run when no storage is configured.
var ErrNoStorage = errors.New("storage is required")

// Run starts the quick-entry screen and blocks until the user quits or
// ctx is canceled.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Storage == nil {
		return ErrNoStorage
	}

	p := tea.NewProgram(newModel(ctx, cfg), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("quick entry failed: %w", err)
	}
	return nil
}
