// Package ledger records parsed Magic Notes as sales, expenses and credits.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/mathnote/internal/common"
	"github.com/Veraticus/mathnote/internal/model"
	"github.com/Veraticus/mathnote/internal/service"
)

// Entry is the record written for one note. Exactly one of Sale, Expense
// and Credit is set, matching Type.
type Entry struct {
	Sale    *model.Sale
	Expense *model.Expense
	Credit  *model.Credit
	Type    model.TransactionType
}

// ID returns the stored record's ID.
func (e Entry) ID() string {
	switch {
	case e.Sale != nil:
		return e.Sale.ID
	case e.Expense != nil:
		return e.Expense.ID
	case e.Credit != nil:
		return e.Credit.ID
	}
	return ""
}

// Recorder maps parsed transactions onto ledger writes.
type Recorder struct {
	logger       *slog.Logger
	defaultParty string
	retry        common.RetryOptions
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithDefaultParty sets the party recorded for sales without one.
func WithDefaultParty(party string) Option {
	return func(r *Recorder) {
		if p := strings.TrimSpace(party); p != "" {
			r.defaultParty = p
		}
	}
}

// WithRetry sets how busy-database errors are retried.
func WithRetry(opts common.RetryOptions) Option {
	return func(r *Recorder) { r.retry = opts }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

// NewRecorder creates a Recorder.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		defaultParty: model.DefaultParty,
		logger:       slog.Default(),
		retry:        common.RetryOptions{MaxAttempts: 3},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build converts a parsed transaction into the record that Record would
// write, without touching storage.
func (r *Recorder) Build(parsed *model.ParsedTransaction, date time.Time) (Entry, error) {
	if parsed == nil {
		return Entry{}, fmt.Errorf("%w: nil transaction", model.ErrInvalidParsedTransaction)
	}
	if err := parsed.Validate(); err != nil {
		return Entry{}, err
	}

	entry := Entry{Type: parsed.Type}
	switch parsed.Type {
	case model.TypeSale:
		entry.Sale = &model.Sale{
			Date:          date,
			Party:         parsed.PartyOrDefault(r.defaultParty),
			Amount:        parsed.Amount,
			PaidAmount:    *parsed.PaidAmount,
			PaymentMethod: parsed.PaymentMethod,
			Note:          parsed.Note,
			Source:        parsed.Input,
		}
	case model.TypeExpense:
		entry.Expense = &model.Expense{
			Date:          date,
			Party:         parsed.Party,
			Category:      parsed.Category,
			Amount:        parsed.Amount,
			PaymentMethod: parsed.PaymentMethod,
			Note:          parsed.Note,
			Source:        parsed.Input,
		}
	case model.TypeCredit:
		entry.Credit = &model.Credit{
			Date:          date,
			Party:         parsed.Party,
			CreditType:    parsed.CreditType,
			Amount:        parsed.Amount,
			PaymentMethod: parsed.PaymentMethod,
			Note:          parsed.Note,
			Source:        parsed.Input,
		}
	}
	return entry, nil
}

// Record stores parsed as a new ledger entry dated date. Writes that fail
// because the database is busy are retried.
func (r *Recorder) Record(ctx context.Context, w service.LedgerWriter, parsed *model.ParsedTransaction, date time.Time) (Entry, error) {
	entry, err := r.Build(parsed, date)
	if err != nil {
		return Entry{}, err
	}

	err = common.WithRetry(ctx, func() error {
		switch {
		case entry.Sale != nil:
			return w.CreateSale(ctx, entry.Sale)
		case entry.Expense != nil:
			return w.CreateExpense(ctx, entry.Expense)
		default:
			return w.CreateCredit(ctx, entry.Credit)
		}
	}, r.retry)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to record %s: %w", entry.Type, err)
	}

	r.logger.Debug("Recorded entry", "type", entry.Type, "id", entry.ID())
	return entry, nil
}
