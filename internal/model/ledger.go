package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a recorded sale. PaidAmount is less than Amount when the
// customer paid only part of the bill.
type Sale struct {
	Date          time.Time
	CreatedAt     time.Time
	Amount        decimal.Decimal
	PaidAmount    decimal.Decimal
	ID            string
	Party         string
	PaymentMethod PaymentMethod
	Note          string
	Source        string // raw Magic Note text, empty for manual entries
}

// Due returns the amount still owed on the sale.
func (s Sale) Due() decimal.Decimal {
	return s.Amount.Sub(s.PaidAmount)
}

// Expense is a recorded expense.
type Expense struct {
	Date          time.Time
	CreatedAt     time.Time
	Amount        decimal.Decimal
	ID            string
	Party         string
	Category      ExpenseCategory
	PaymentMethod PaymentMethod
	Note          string
	Source        string
}

// Credit is money lent (given) or borrowed (taken).
type Credit struct {
	Date          time.Time
	CreatedAt     time.Time
	SettledAt     *time.Time
	Amount        decimal.Decimal
	ID            string
	Party         string
	CreditType    CreditType
	PaymentMethod PaymentMethod
	Note          string
	Source        string
}

// IsSettled reports whether the credit has been repaid.
func (c Credit) IsSettled() bool {
	return c.SettledAt != nil
}

// LedgerFilter restricts list queries. Zero values mean no restriction.
type LedgerFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Party     string
	OnlyOpen  bool // credits only: exclude settled credits
	Limit     int
}

// Summary aggregates the ledger over a date range.
type Summary struct {
	Start              time.Time
	End                time.Time
	ExpensesByCategory map[ExpenseCategory]decimal.Decimal
	SalesByPayment     map[PaymentMethod]decimal.Decimal
	TotalSales         decimal.Decimal
	TotalReceived      decimal.Decimal
	TotalDue           decimal.Decimal
	TotalExpenses      decimal.Decimal
	OutstandingGiven   decimal.Decimal
	OutstandingTaken   decimal.Decimal
	SaleCount          int
	ExpenseCount       int
	CreditCount        int
}

// Net returns sales minus expenses.
func (s Summary) Net() decimal.Decimal {
	return s.TotalSales.Sub(s.TotalExpenses)
}
