package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/mathnote/internal/common"
	"github.com/Veraticus/mathnote/internal/model"
)

const expenseColumns = `id, date, party, category, amount, payment_method, note, source, created_at`

// CreateExpense stores a new expense.
func (s *SQLiteStorage) CreateExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.createExpenseTx(ctx, s.db, expense)
}

func (s *SQLiteStorage) createExpenseTx(ctx context.Context, q queryable, expense *model.Expense) error {
	if err := validateExpense(expense); err != nil {
		return err
	}
	s.stamp(&expense.ID, &expense.CreatedAt)
	expense.Date = dayOf(expense.Date)

	_, err := q.ExecContext(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		expense.ID,
		expense.Date.Format(dateLayout),
		expense.Party,
		string(expense.Category),
		expense.Amount.String(),
		string(expense.PaymentMethod),
		expense.Note,
		expense.Source,
		expense.CreatedAt,
	)
	if err != nil {
		return writeError("insert expense "+expense.ID, err)
	}
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses returns expenses matching filter, newest first.
func (s *SQLiteStorage) ListExpenses(ctx context.Context, filter model.LedgerFilter) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.listExpenses(ctx, s.db, filter)
}

func (s *SQLiteStorage) listExpenses(ctx context.Context, q queryable, filter model.LedgerFilter) ([]model.Expense, error) {
	clause, args := filterClause(filter)
	rows, err := q.QueryContext(ctx, `SELECT `+expenseColumns+` FROM expenses`+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}

// DeleteExpense removes an expense.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return s.deleteByID(ctx, "expenses", id)
}

func scanExpense(row rowScanner) (*model.Expense, error) {
	var expense model.Expense
	var date, category, amount, method string

	err := row.Scan(
		&expense.ID,
		&date,
		&expense.Party,
		&category,
		&amount,
		&method,
		&expense.Note,
		&expense.Source,
		&expense.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}

	if expense.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	if expense.Amount, err = parseAmount(amount, "amount"); err != nil {
		return nil, err
	}
	expense.Category = model.ExpenseCategory(category)
	expense.PaymentMethod = model.PaymentMethod(method)

	return &expense, nil
}
