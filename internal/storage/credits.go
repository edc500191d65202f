package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/mathnote/internal/common"
	"github.com/Veraticus/mathnote/internal/model"
)

const creditColumns = `id, date, party, credit_type, amount, payment_method, note, source, created_at, settled_at`

// CreateCredit stores a new credit.
func (s *SQLiteStorage) CreateCredit(ctx context.Context, credit *model.Credit) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.createCreditTx(ctx, s.db, credit)
}

func (s *SQLiteStorage) createCreditTx(ctx context.Context, q queryable, credit *model.Credit) error {
	if err := validateCredit(credit); err != nil {
		return err
	}
	s.stamp(&credit.ID, &credit.CreatedAt)
	credit.Date = dayOf(credit.Date)

	var settledAt sql.NullTime
	if credit.SettledAt != nil {
		settledAt = sql.NullTime{Time: *credit.SettledAt, Valid: true}
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO credits (`+creditColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		credit.ID,
		credit.Date.Format(dateLayout),
		credit.Party,
		string(credit.CreditType),
		credit.Amount.String(),
		string(credit.PaymentMethod),
		credit.Note,
		credit.Source,
		credit.CreatedAt,
		settledAt,
	)
	if err != nil {
		return writeError("insert credit "+credit.ID, err)
	}
	return nil
}

// GetCredit retrieves a credit by ID.
func (s *SQLiteStorage) GetCredit(ctx context.Context, id string) (*model.Credit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+creditColumns+` FROM credits WHERE id = ?`, id)
	credit, err := scanCredit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("credit %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return credit, nil
}

// ListCredits returns credits matching filter, newest first.
func (s *SQLiteStorage) ListCredits(ctx context.Context, filter model.LedgerFilter) ([]model.Credit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.listCredits(ctx, s.db, filter)
}

func (s *SQLiteStorage) listCredits(ctx context.Context, q queryable, filter model.LedgerFilter) ([]model.Credit, error) {
	var extra []string
	if filter.OnlyOpen {
		extra = append(extra, "settled_at IS NULL")
	}
	clause, args := filterClause(filter, extra...)

	rows, err := q.QueryContext(ctx, `SELECT `+creditColumns+` FROM credits`+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query credits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var credits []model.Credit
	for rows.Next() {
		credit, err := scanCredit(rows)
		if err != nil {
			return nil, err
		}
		credits = append(credits, *credit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credits: %w", err)
	}
	return credits, nil
}

// SettleCredit marks a credit as repaid at the given time.
func (s *SQLiteStorage) SettleCredit(ctx context.Context, id string, at time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if at.IsZero() {
		at = s.now()
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE credits SET settled_at = ?
		WHERE id = ? AND settled_at IS NULL
	`, at, id)
	if err != nil {
		return writeError("settle credit "+id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check settled rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Nothing updated: either the credit is missing or already settled.
	var exists int
	err = s.db.QueryRowContext(ctx, `SELECT 1 FROM credits WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("credit %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to look up credit: %w", err)
	}
	return fmt.Errorf("credit %s: %w", id, common.ErrAlreadySettled)
}

// DeleteCredit removes a credit.
func (s *SQLiteStorage) DeleteCredit(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return s.deleteByID(ctx, "credits", id)
}

func scanCredit(row rowScanner) (*model.Credit, error) {
	var credit model.Credit
	var date, creditType, amount, method string
	var settledAt sql.NullTime

	err := row.Scan(
		&credit.ID,
		&date,
		&credit.Party,
		&creditType,
		&amount,
		&method,
		&credit.Note,
		&credit.Source,
		&credit.CreatedAt,
		&settledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan credit: %w", err)
	}

	if credit.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	if credit.Amount, err = parseAmount(amount, "amount"); err != nil {
		return nil, err
	}
	credit.CreditType = model.CreditType(creditType)
	credit.PaymentMethod = model.PaymentMethod(method)
	if settledAt.Valid {
		t := settledAt.Time
		credit.SettledAt = &t
	}

	return &credit, nil
}
