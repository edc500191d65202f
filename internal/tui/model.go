// Package tui implements the interactive quick-entry screen: type a Magic
// Note, watch it parse live, confirm and save.
package tui

import (
	"context"
	"strings"

	"github.com/Veraticus/mathnote/internal/cli"
	"github.com/Veraticus/mathnote/internal/ledger"
	"github.com/Veraticus/mathnote/internal/magicnote"
	"github.com/Veraticus/mathnote/internal/model"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the TUI.
type State int

const (
	StateEditing State = iota
	StateConfirming
	StateSaving
)

// maxHistory is how many saved entries stay on screen.
const maxHistory = 5

// Model holds the quick-entry state.
type Model struct {
	ctx         context.Context
	lastError   error
	parseErr    error
	parsed      *model.ParsedTransaction
	config      Config
	help        help.Model
	input       textinput.Model
	keymap      KeyMap
	history     []string
	state       State
	width       int
	height      int
	showFailure bool
	quitting    bool
}

func newModel(ctx context.Context, cfg Config) Model {
	if cfg.Parser == nil {
		cfg.Parser = magicnote.MustNewParser()
	}
	if cfg.Recorder == nil {
		cfg.Recorder = ledger.NewRecorder(ledger.WithDefaultParty(cfg.DefaultParty))
	}

	input := textinput.New()
	input.Placeholder = magicnoteExample
	input.Prompt = "✎ "
	input.CharLimit = 200
	input.Width = cfg.Width - 4
	input.Focus()

	return Model{
		ctx:    ctx,
		config: cfg,
		help:   help.New(),
		input:  input,
		keymap: DefaultKeyMap(),
		state:  StateEditing,
		width:  cfg.Width,
		height: cfg.Height,
	}
}

const magicnoteExample = "Sold 50*8 to Shop"

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.help.Width = msg.Width
		return m, nil

	case recordedMsg:
		m.history = append(m.history, cli.FormatRecorded(msg.parsed, msg.entry.ID()))
		if len(m.history) > maxHistory {
			m.history = m.history[len(m.history)-maxHistory:]
		}
		m.reset()
		return m, nil

	case errorMsg:
		m.lastError = msg.err
		m.state = StateEditing
		m.input.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateSaving:
		return m, nil

	case StateConfirming:
		switch {
		case key.Matches(msg, m.keymap.Accept):
			m.state = StateSaving
			return m, m.recordCmd(m.parsed)
		case key.Matches(msg, m.keymap.Reject):
			m.state = StateEditing
			m.input.Focus()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		m.reset()
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		if m.parsed == nil {
			m.showFailure = m.parseErr != nil
			return m, nil
		}
		m.lastError = nil
		m.state = StateConfirming
		m.input.Blur()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.preview()
	}
	return m, cmd
}

// preview re-parses the current input.
func (m *Model) preview() {
	m.showFailure = false
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.parsed, m.parseErr = nil, nil
		return
	}
	m.parsed, m.parseErr = m.config.Parser.Parse(text)
}

func (m *Model) reset() {
	m.input.Reset()
	m.input.Focus()
	m.parsed = nil
	m.parseErr = nil
	m.showFailure = false
	m.state = StateEditing
}
