package tui

import (
	"strings"

	"github.com/Veraticus/mathnote/internal/cli"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Magic Note"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch m.state {
	case StateEditing:
		b.WriteString(m.renderPreview())
	case StateConfirming:
		b.WriteString(cli.RenderParsed(m.parsed, m.config.DefaultParty))
		b.WriteString("\n")
		b.WriteString(cli.FormatPrompt("Save this entry? y/n"))
	case StateSaving:
		b.WriteString(cli.FormatInfo("Saving..."))
	}

	if m.lastError != nil {
		b.WriteString("\n")
		b.WriteString(cli.FormatError("Could not save: " + m.lastError.Error()))
	}

	if len(m.history) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(m.history, "\n"))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

func (m Model) renderPreview() string {
	switch {
	case m.parsed != nil:
		return cli.RenderParsed(m.parsed, m.config.DefaultParty) + "\n" +
			cli.SubtleStyle.Render("Press Enter to review")
	case m.showFailure:
		return cli.FormatParseFailure(m.parseErr)
	case m.parseErr != nil:
		return cli.SubtleStyle.Render("Keep typing...")
	}
	return cli.SubtleStyle.Render("Type a note like: " + magicnoteExample)
}
