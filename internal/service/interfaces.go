// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/mathnote/internal/model"
)

// Storage defines the contract for the ledger persistence layer.
type Storage interface {
	LedgerWriter

	// Sale operations
	GetSale(ctx context.Context, id string) (*model.Sale, error)
	ListSales(ctx context.Context, filter model.LedgerFilter) ([]model.Sale, error)
	DeleteSale(ctx context.Context, id string) error

	// Expense operations
	GetExpense(ctx context.Context, id string) (*model.Expense, error)
	ListExpenses(ctx context.Context, filter model.LedgerFilter) ([]model.Expense, error)
	DeleteExpense(ctx context.Context, id string) error

	// Credit operations
	GetCredit(ctx context.Context, id string) (*model.Credit, error)
	ListCredits(ctx context.Context, filter model.LedgerFilter) ([]model.Credit, error)
	SettleCredit(ctx context.Context, id string, at time.Time) error
	DeleteCredit(ctx context.Context, id string) error

	// Reporting
	GetSummary(ctx context.Context, start, end time.Time) (*model.Summary, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// LedgerWriter creates ledger records. Create methods assign an ID and
// CreatedAt when they are empty.
type LedgerWriter interface {
	CreateSale(ctx context.Context, sale *model.Sale) error
	CreateExpense(ctx context.Context, expense *model.Expense) error
	CreateCredit(ctx context.Context, credit *model.Credit) error
}

// Transaction is a unit of work over the ledger. Nothing it writes is
// visible to other readers until Commit.
type Transaction interface {
	LedgerWriter
	Commit() error
	Rollback() error
}
