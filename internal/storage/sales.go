package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/mathnote/internal/common"
	"github.com/Veraticus/mathnote/internal/model"
)

const saleColumns = `id, date, party, amount, paid_amount, payment_method, note, source, created_at`

// CreateSale stores a new sale.
func (s *SQLiteStorage) CreateSale(ctx context.Context, sale *model.Sale) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.createSaleTx(ctx, s.db, sale)
}

func (s *SQLiteStorage) createSaleTx(ctx context.Context, q queryable, sale *model.Sale) error {
	if err := validateSale(sale); err != nil {
		return err
	}
	s.stamp(&sale.ID, &sale.CreatedAt)
	sale.Date = dayOf(sale.Date)

	_, err := q.ExecContext(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sale.ID,
		sale.Date.Format(dateLayout),
		sale.Party,
		sale.Amount.String(),
		sale.PaidAmount.String(),
		string(sale.PaymentMethod),
		sale.Note,
		sale.Source,
		sale.CreatedAt,
	)
	if err != nil {
		return writeError("insert sale "+sale.ID, err)
	}
	return nil
}

// GetSale retrieves a sale by ID.
func (s *SQLiteStorage) GetSale(ctx context.Context, id string) (*model.Sale, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = ?`, id)
	sale, err := scanSale(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sale %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// ListSales returns sales matching filter, newest first.
func (s *SQLiteStorage) ListSales(ctx context.Context, filter model.LedgerFilter) ([]model.Sale, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.listSales(ctx, s.db, filter)
}

func (s *SQLiteStorage) listSales(ctx context.Context, q queryable, filter model.LedgerFilter) ([]model.Sale, error) {
	clause, args := filterClause(filter)
	rows, err := q.QueryContext(ctx, `SELECT `+saleColumns+` FROM sales`+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sales []model.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, *sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}
	return sales, nil
}

// DeleteSale removes a sale.
func (s *SQLiteStorage) DeleteSale(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return s.deleteByID(ctx, "sales", id)
}

func scanSale(row rowScanner) (*model.Sale, error) {
	var sale model.Sale
	var date, amount, paid, method string

	err := row.Scan(
		&sale.ID,
		&date,
		&sale.Party,
		&amount,
		&paid,
		&method,
		&sale.Note,
		&sale.Source,
		&sale.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan sale: %w", err)
	}

	if sale.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	if sale.Amount, err = parseAmount(amount, "amount"); err != nil {
		return nil, err
	}
	if sale.PaidAmount, err = parseAmount(paid, "paid_amount"); err != nil {
		return nil, err
	}
	sale.PaymentMethod = model.PaymentMethod(method)

	return &sale, nil
}
