package cli

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Veraticus/mathnote/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// renderTable lays out rows in padded columns under a bold header.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	line := func(cells []string) string {
		rendered := make([]string, len(cells))
		for i, cell := range cells {
			rendered[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}

	out := []string{TableHeaderStyle.Render(line(headers))}
	for _, row := range rows {
		out = append(out, line(row))
	}
	return strings.Join(out, "\n")
}

// RenderSales renders sales as a table.
func RenderSales(sales []model.Sale) string {
	if len(sales) == 0 {
		return FormatInfo("No sales found")
	}
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		due := ""
		if s.Due().IsPositive() {
			due = FormatRupees(s.Due())
		}
		rows = append(rows, []string{
			s.ID, FormatDate(s.Date), FormatRupees(s.Amount), due,
			s.Party, string(s.PaymentMethod), s.Note,
		})
	}
	return renderTable([]string{"ID", "Date", "Amount", "Due", "Party", "Payment", "Note"}, rows)
}

// RenderExpenses renders expenses as a table.
func RenderExpenses(expenses []model.Expense) string {
	if len(expenses) == 0 {
		return FormatInfo("No expenses found")
	}
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			e.ID, FormatDate(e.Date), FormatRupees(e.Amount),
			string(e.Category), e.Party, string(e.PaymentMethod), e.Note,
		})
	}
	return renderTable([]string{"ID", "Date", "Amount", "Category", "Party", "Payment", "Note"}, rows)
}

// RenderCredits renders credits as a table.
func RenderCredits(credits []model.Credit) string {
	if len(credits) == 0 {
		return FormatInfo("No credits found")
	}
	rows := make([][]string, 0, len(credits))
	for _, c := range credits {
		status := WarningStyle.Render("open")
		if c.IsSettled() {
			status = SuccessStyle.Render("settled " + FormatDate(*c.SettledAt))
		}
		rows = append(rows, []string{
			c.ID, FormatDate(c.Date), FormatRupees(c.Amount),
			string(c.CreditType), c.Party, string(c.PaymentMethod), status,
		})
	}
	return renderTable([]string{"ID", "Date", "Amount", "Type", "Party", "Payment", "Status"}, rows)
}

// RenderSummary renders the ledger report for a date range.
func RenderSummary(s *model.Summary) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Report " + FormatDate(s.Start) + " to " + FormatDate(s.End)))
	b.WriteString("\n")

	totals := [][]string{
		{"Sales", FormatRupees(s.TotalSales), countOf(s.SaleCount)},
		{"Received", FormatRupees(s.TotalReceived), ""},
		{"Due", FormatRupees(s.TotalDue), ""},
		{"Expenses", FormatRupees(s.TotalExpenses), countOf(s.ExpenseCount)},
		{"Net", netStyle(s.Net()).Render(FormatRupees(s.Net())), ""},
		{"Lent (open)", FormatRupees(s.OutstandingGiven), ""},
		{"Borrowed (open)", FormatRupees(s.OutstandingTaken), ""},
		{"Credits", "", countOf(s.CreditCount)},
	}
	b.WriteString(renderTable([]string{"", "Amount", "Entries"}, totals))

	if len(s.SalesByPayment) > 0 {
		b.WriteString("\n\n")
		rows := [][]string{}
		for _, m := range []model.PaymentMethod{model.PaymentCash, model.PaymentUPI} {
			if amt, ok := s.SalesByPayment[m]; ok {
				rows = append(rows, []string{string(m), FormatRupees(amt)})
			}
		}
		b.WriteString(renderTable([]string{"Sales by payment", "Amount"}, rows))
	}

	if len(s.ExpensesByCategory) > 0 {
		b.WriteString("\n\n")
		cats := make([]model.ExpenseCategory, 0, len(s.ExpensesByCategory))
		for c := range s.ExpensesByCategory {
			cats = append(cats, c)
		}
		// Largest first, ties by name.
		sort.Slice(cats, func(i, j int) bool {
			ai, aj := s.ExpensesByCategory[cats[i]], s.ExpensesByCategory[cats[j]]
			if !ai.Equal(aj) {
				return ai.GreaterThan(aj)
			}
			return cats[i] < cats[j]
		})
		rows := make([][]string, 0, len(cats))
		for _, c := range cats {
			rows = append(rows, []string{string(c), FormatRupees(s.ExpensesByCategory[c])})
		}
		b.WriteString(renderTable([]string{"Expenses by category", "Amount"}, rows))
	}

	return b.String()
}

func countOf(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func netStyle(net decimal.Decimal) lipgloss.Style {
	if net.IsNegative() {
		return ErrorStyle
	}
	return SuccessStyle
}
