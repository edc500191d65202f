package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/mathnote/internal/model"
	"github.com/shopspring/decimal"
)

// GetSummary aggregates the ledger between start and end, both inclusive
// by calendar day. Outstanding credit balances count every credit dated on
// or before end that had not been settled by end.
func (s *SQLiteStorage) GetSummary(ctx context.Context, start, end time.Time) (*model.Summary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	start, end = dayOf(start), dayOf(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidDateRange, end.Format(dateLayout), start.Format(dateLayout))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inRange := model.LedgerFilter{StartDate: &start, EndDate: &end}

	sales, err := s.listSales(ctx, tx, inRange)
	if err != nil {
		return nil, err
	}
	expenses, err := s.listExpenses(ctx, tx, inRange)
	if err != nil {
		return nil, err
	}
	credits, err := s.listCredits(ctx, tx, model.LedgerFilter{EndDate: &end})
	if err != nil {
		return nil, err
	}

	summary := &model.Summary{
		Start:              start,
		End:                end,
		ExpensesByCategory: make(map[model.ExpenseCategory]decimal.Decimal),
		SalesByPayment:     make(map[model.PaymentMethod]decimal.Decimal),
	}

	for _, sale := range sales {
		summary.SaleCount++
		summary.TotalSales = summary.TotalSales.Add(sale.Amount)
		summary.TotalReceived = summary.TotalReceived.Add(sale.PaidAmount)
		summary.SalesByPayment[sale.PaymentMethod] = summary.SalesByPayment[sale.PaymentMethod].Add(sale.Amount)
	}
	summary.TotalDue = summary.TotalSales.Sub(summary.TotalReceived)

	for _, expense := range expenses {
		summary.ExpenseCount++
		summary.TotalExpenses = summary.TotalExpenses.Add(expense.Amount)
		summary.ExpensesByCategory[expense.Category] = summary.ExpensesByCategory[expense.Category].Add(expense.Amount)
	}

	endOfDay := end.AddDate(0, 0, 1)
	for _, credit := range credits {
		if !credit.Date.Before(start) {
			summary.CreditCount++
		}
		if credit.SettledAt != nil && credit.SettledAt.Before(endOfDay) {
			continue
		}
		switch credit.CreditType {
		case model.CreditGiven:
			summary.OutstandingGiven = summary.OutstandingGiven.Add(credit.Amount)
		case model.CreditTaken:
			summary.OutstandingTaken = summary.OutstandingTaken.Add(credit.Amount)
		}
	}

	return summary, nil
}
