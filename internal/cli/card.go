package cli

import (
	"errors"
	"strings"

	"github.com/Veraticus/mathnote/internal/common"
	"github.com/Veraticus/mathnote/internal/magicnote"
	"github.com/Veraticus/mathnote/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// RenderParsed renders the confirmation card shown before a note is saved.
// Sales without a party show defaultParty.
func RenderParsed(p *model.ParsedTransaction, defaultParty string) string {
	var rows []string
	add := func(label, value string) {
		if value == "" {
			return
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), value))
	}

	add("Amount", BoldStyle.Render(FormatRupees(p.Amount)))
	switch p.Type {
	case model.TypeSale:
		if due := p.Due(); due.IsPositive() {
			add("Paid", SuccessStyle.Render(FormatRupees(*p.PaidAmount)))
			add("Due", WarningStyle.Render(FormatRupees(due)))
		}
	case model.TypeExpense:
		add("Category", string(p.Category))
	case model.TypeCredit:
		add("Direction", creditLabel(p.CreditType))
	}
	add("Party", p.PartyOrDefault(defaultParty))
	add("Payment", string(p.PaymentMethod))
	add("Note", SubtleStyle.Render(p.Note))

	return RenderBox(typeIcon(p.Type)+" "+titleCase(string(p.Type)), strings.Join(rows, "\n"))
}

// FormatParseFailure explains why a note was not understood and lists
// example notes.
func FormatParseFailure(err error) string {
	reason := "Could not read that note"
	switch {
	case errors.Is(err, magicnote.ErrMalformedArithmetic):
		reason = "The amount has a calculation that does not work out"
	case errors.Is(err, magicnote.ErrNoAmountFound):
		reason = "No amount found in the note"
	case errors.Is(err, magicnote.ErrNoIntentMatched):
		reason = "Could not tell whether this is a sale, an expense or a credit"
	}

	var userErr *common.UserError
	hint := ""
	if errors.As(common.NewNoteError(err), &userErr) {
		hint = userErr.UserMessage
	}

	return FormatError(reason) + "\n" + SubtleStyle.Render(hint)
}

// FormatRecorded is the one-line confirmation after a note is saved.
func FormatRecorded(p *model.ParsedTransaction, id string) string {
	return FormatSuccess("Saved " + string(p.Type) + " of " + FormatRupees(p.Amount) + " (" + id + ")")
}

func typeIcon(t model.TransactionType) string {
	switch t {
	case model.TypeSale:
		return SaleIcon
	case model.TypeExpense:
		return ExpenseIcon
	case model.TypeCredit:
		return CreditIcon
	}
	return NoteIcon
}

func creditLabel(c model.CreditType) string {
	switch c {
	case model.CreditGiven:
		return "Given (they owe you)"
	case model.CreditTaken:
		return "Taken (you owe them)"
	}
	return string(c)
}
