package tui

import (
	"github.com/Veraticus/mathnote/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// recordCmd saves the parsed note in the background.
func (m Model) recordCmd(parsed *model.ParsedTransaction) tea.Cmd {
	ctx, recorder, storage, now := m.ctx, m.config.Recorder, m.config.Storage, m.config.Now
	return func() tea.Msg {
		entry, err := recorder.Record(ctx, storage, parsed, now())
		if err != nil {
			return errorMsg{err: err}
		}
		return recordedMsg{parsed: parsed, entry: entry}
	}
}
