package tui

import (
	"time"

	"github.com/Veraticus/mathnote/internal/ledger"
	"github.com/Veraticus/mathnote/internal/magicnote"
	"github.com/Veraticus/mathnote/internal/service"
)

// Config holds TUI configuration.
type Config struct {
	Storage      service.LedgerWriter
	Parser       *magicnote.Parser
	Recorder     *ledger.Recorder
	Now          func() time.Time
	DefaultParty string
	Width        int
	Height       int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Now:    time.Now,
		Width:  80,
		Height: 24,
	}
}

// WithStorage sets where confirmed notes are written.
func WithStorage(storage service.LedgerWriter) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithParser sets the note parser.
func WithParser(parser *magicnote.Parser) Option {
	return func(c *Config) {
		c.Parser = parser
	}
}

// WithRecorder sets the recorder and the party shown for sales without one.
func WithRecorder(recorder *ledger.Recorder, defaultParty string) Option {
	return func(c *Config) {
		c.Recorder = recorder
		c.DefaultParty = defaultParty
	}
}

// WithClock sets the clock that dates new entries.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
