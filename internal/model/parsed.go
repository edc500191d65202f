// Package model defines the core data structures for the mathnote application.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType identifies what a Magic Note describes.
type TransactionType string

const (
	// TypeSale is money received for goods sold.
	TypeSale TransactionType = "sale"
	// TypeExpense is money spent by the shop.
	TypeExpense TransactionType = "expense"
	// TypeCredit is money lent to or borrowed from someone.
	TypeCredit TransactionType = "credit"
)

// CreditType indicates the direction of a credit.
type CreditType string

const (
	// CreditGiven is money lent to a customer.
	CreditGiven CreditType = "given"
	// CreditTaken is money borrowed from a vendor or person.
	CreditTaken CreditType = "taken"
)

// PaymentMethod is how money changed hands.
type PaymentMethod string

const (
	// PaymentCash is the default payment method.
	PaymentCash PaymentMethod = "Cash"
	// PaymentUPI is an instant bank payment.
	PaymentUPI PaymentMethod = "UPI"
)

// ExpenseCategory is one of a fixed set of expense buckets.
type ExpenseCategory string

// Expense categories.
const (
	CategoryFood        ExpenseCategory = "Food"
	CategoryTransport   ExpenseCategory = "Transport"
	CategoryRent        ExpenseCategory = "Rent"
	CategorySalary      ExpenseCategory = "Salary"
	CategoryUtilities   ExpenseCategory = "Utilities"
	CategoryStock       ExpenseCategory = "Stock"
	CategoryMaintenance ExpenseCategory = "Maintenance"
	CategoryOther       ExpenseCategory = "Other"
)

// ExpenseCategories lists every valid category in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryFood,
	CategoryTransport,
	CategoryRent,
	CategorySalary,
	CategoryUtilities,
	CategoryStock,
	CategoryMaintenance,
	CategoryOther,
}

// DefaultParty is recorded for sales without a named customer.
const DefaultParty = "Walk-in"

// ErrInvalidParsedTransaction is returned when a parse result breaks an invariant.
var ErrInvalidParsedTransaction = errors.New("invalid parsed transaction")

// ParsedTransaction is the structured result of a Magic Note.
type ParsedTransaction struct {
	Amount        decimal.Decimal  `json:"amount"`
	PaidAmount    *decimal.Decimal `json:"paid_amount,omitempty"`
	Type          TransactionType  `json:"type"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
	Category      ExpenseCategory  `json:"category,omitempty"`
	CreditType    CreditType       `json:"credit_type,omitempty"`
	Party         string           `json:"party,omitempty"`
	Note          string           `json:"note,omitempty"`
	Input         string           `json:"input"`
}

// PartyOrDefault returns the party, falling back to the given default for sales.
func (p ParsedTransaction) PartyOrDefault(def string) string {
	if p.Party != "" || p.Type != TypeSale {
		return p.Party
	}
	if def == "" {
		def = DefaultParty
	}
	return def
}

// Due returns the unpaid part of a sale. It is zero for other types.
func (p ParsedTransaction) Due() decimal.Decimal {
	if p.Type != TypeSale || p.PaidAmount == nil {
		return decimal.Zero
	}
	return p.Amount.Sub(*p.PaidAmount)
}

// Validate checks the invariants every successful parse must satisfy.
func (p ParsedTransaction) Validate() error {
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidParsedTransaction, p.Amount)
	}

	switch p.PaymentMethod {
	case PaymentCash, PaymentUPI:
	default:
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidParsedTransaction, p.PaymentMethod)
	}

	switch p.Type {
	case TypeSale:
		if p.PaidAmount == nil {
			return fmt.Errorf("%w: sale without paid amount", ErrInvalidParsedTransaction)
		}
		if !p.PaidAmount.IsPositive() || p.PaidAmount.GreaterThan(p.Amount) {
			return fmt.Errorf("%w: paid amount %s out of range", ErrInvalidParsedTransaction, p.PaidAmount)
		}
	case TypeExpense:
		if !p.Category.Valid() {
			return fmt.Errorf("%w: expense category %q", ErrInvalidParsedTransaction, p.Category)
		}
	case TypeCredit:
		if p.CreditType != CreditGiven && p.CreditType != CreditTaken {
			return fmt.Errorf("%w: credit type %q", ErrInvalidParsedTransaction, p.CreditType)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidParsedTransaction, p.Type)
	}

	if p.Type != TypeExpense && p.Category != "" {
		return fmt.Errorf("%w: category set on %s", ErrInvalidParsedTransaction, p.Type)
	}
	if p.Type != TypeCredit && p.CreditType != "" {
		return fmt.Errorf("%w: credit type set on %s", ErrInvalidParsedTransaction, p.Type)
	}
	if p.Type != TypeSale && p.PaidAmount != nil {
		return fmt.Errorf("%w: paid amount set on %s", ErrInvalidParsedTransaction, p.Type)
	}

	return nil
}

// Valid reports whether c is one of ExpenseCategories.
func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseExpenseCategory matches a category name case-insensitively.
func ParseExpenseCategory(name string) (ExpenseCategory, bool) {
	for _, known := range ExpenseCategories {
		if strings.EqualFold(string(known), strings.TrimSpace(name)) {
			return known, true
		}
	}
	return "", false
}
