// Package testutil provides shared test helpers for the mathnote ledger.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/mathnote/internal/model"
	"github.com/Veraticus/mathnote/internal/storage"
	"github.com/shopspring/decimal"
)

// TestDB is a migrated in-memory ledger that is closed when the test ends.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	db.SeedSale("Rahul", "500", "500", testutil.Day(2024, 3, 1))
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// Day returns local midnight on the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// Dec parses a decimal literal or fails the test.
func Dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

// SeedSale stores a cash sale and returns it.
func (db *TestDB) SeedSale(party, amount, paid string, date time.Time) model.Sale {
	db.t.Helper()
	sale := model.Sale{
		Date:          date,
		Party:         party,
		Amount:        Dec(db.t, amount),
		PaidAmount:    Dec(db.t, paid),
		PaymentMethod: model.PaymentCash,
	}
	if err := db.Storage.CreateSale(context.Background(), &sale); err != nil {
		db.t.Fatalf("failed to seed sale: %v", err)
	}
	return sale
}

// SeedExpense stores a cash expense and returns it.
func (db *TestDB) SeedExpense(category model.ExpenseCategory, amount string, date time.Time) model.Expense {
	db.t.Helper()
	expense := model.Expense{
		Date:          date,
		Category:      category,
		Amount:        Dec(db.t, amount),
		PaymentMethod: model.PaymentCash,
	}
	if err := db.Storage.CreateExpense(context.Background(), &expense); err != nil {
		db.t.Fatalf("failed to seed expense: %v", err)
	}
	return expense
}

// SeedCredit stores a cash credit and returns it.
func (db *TestDB) SeedCredit(creditType model.CreditType, party, amount string, date time.Time) model.Credit {
	db.t.Helper()
	credit := model.Credit{
		Date:          date,
		Party:         party,
		CreditType:    creditType,
		Amount:        Dec(db.t, amount),
		PaymentMethod: model.PaymentCash,
	}
	if err := db.Storage.CreateCredit(context.Background(), &credit); err != nil {
		db.t.Fatalf("failed to seed credit: %v", err)
	}
	return credit
}
