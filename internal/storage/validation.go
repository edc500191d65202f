package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/mathnote/internal/model"
	"github.com/shopspring/decimal"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidFilter    = errors.New("invalid filter")
	ErrInvalidSale      = errors.New("invalid sale")
	ErrInvalidExpense   = errors.New("invalid expense")
	ErrInvalidCredit    = errors.New("invalid credit")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validatePaymentMethod(m model.PaymentMethod) bool {
	return m == model.PaymentCash || m == model.PaymentUPI
}

// validateSale validates a sale before it is written.
func validateSale(sale *model.Sale) error {
	if sale == nil {
		return fmt.Errorf("%w: sale", ErrNilParameter)
	}
	if sale.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidSale)
	}
	if !sale.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidSale)
	}
	if sale.PaidAmount.IsNegative() || sale.PaidAmount.GreaterThan(sale.Amount) {
		return fmt.Errorf("%w: paid amount %s must be between 0 and %s", ErrInvalidSale, sale.PaidAmount, sale.Amount)
	}
	if strings.TrimSpace(sale.Party) == "" {
		return fmt.Errorf("%w: missing party", ErrInvalidSale)
	}
	if !validatePaymentMethod(sale.PaymentMethod) {
		return fmt.Errorf("%w: payment method %q", ErrInvalidSale, sale.PaymentMethod)
	}
	return nil
}

// validateExpense validates an expense before it is written.
func validateExpense(expense *model.Expense) error {
	if expense == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if expense.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidExpense)
	}
	if !expense.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	if !expense.Category.Valid() {
		return fmt.Errorf("%w: category %q", ErrInvalidExpense, expense.Category)
	}
	if !validatePaymentMethod(expense.PaymentMethod) {
		return fmt.Errorf("%w: payment method %q", ErrInvalidExpense, expense.PaymentMethod)
	}
	return nil
}

// validateCredit validates a credit before it is written.
func validateCredit(credit *model.Credit) error {
	if credit == nil {
		return fmt.Errorf("%w: credit", ErrNilParameter)
	}
	if credit.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidCredit)
	}
	if !credit.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidCredit)
	}
	if credit.CreditType != model.CreditGiven && credit.CreditType != model.CreditTaken {
		return fmt.Errorf("%w: credit type %q", ErrInvalidCredit, credit.CreditType)
	}
	if !validatePaymentMethod(credit.PaymentMethod) {
		return fmt.Errorf("%w: payment method %q", ErrInvalidCredit, credit.PaymentMethod)
	}
	return nil
}

// validateFilter rejects inverted date ranges.
func validateFilter(filter model.LedgerFilter) error {
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidDateRange, filter.EndDate.Format(dateLayout), filter.StartDate.Format(dateLayout))
	}
	if filter.Limit < 0 {
		return fmt.Errorf("%w: negative limit %d", ErrInvalidFilter, filter.Limit)
	}
	return nil
}

func parseAmount(s, column string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", column, s, err)
	}
	return d, nil
}
