// Package magicnote turns free-text bookkeeping notes such as
// "Sold 50*8 to Shop" or "Lent 1000 to Ajay cash" into structured
// transactions.
//
// Parsing is a single pass: extract the amount, classify the intent, then
// extract party, payment method, category and note. Any failing stage
// aborts the parse; a partial result is never returned.
package magicnote

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/mathnote/internal/model"
)

// Parser parses Magic Notes. It holds only compiled vocabulary and is safe
// for concurrent use.
type Parser struct {
	classifier *Classifier
	payments   *paymentDetector
	categories *categorizer
	logger     *slog.Logger
}

type parserConfig struct {
	logger        *slog.Logger
	extraKeywords map[model.ExpenseCategory][]string
	rules         []Rule
	categoryRules []CategoryRule
	paymentRules  []PaymentRule
}

// Option configures a Parser.
type Option func(*parserConfig)

// WithRules replaces the intent vocabulary.
func WithRules(rules []Rule) Option {
	return func(c *parserConfig) { c.rules = rules }
}

// WithCategoryRules replaces the expense category table.
func WithCategoryRules(rules []CategoryRule) Option {
	return func(c *parserConfig) { c.categoryRules = rules }
}

// WithPaymentRules replaces the payment vocabulary.
func WithPaymentRules(rules []PaymentRule) Option {
	return func(c *parserConfig) { c.paymentRules = rules }
}

// WithCategoryKeywords adds keywords to existing categories. A category not
// yet in the table is appended after the built-in ones.
func WithCategoryKeywords(extra map[model.ExpenseCategory][]string) Option {
	return func(c *parserConfig) { c.extraKeywords = extra }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *parserConfig) { c.logger = l }
}

// NewParser compiles the vocabulary into a Parser.
func NewParser(opts ...Option) (*Parser, error) {
	cfg := parserConfig{
		rules:         DefaultRules(),
		categoryRules: DefaultCategoryRules(),
		paymentRules:  DefaultPaymentRules(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	classifier, err := NewClassifier(cfg.rules)
	if err != nil {
		return nil, err
	}
	payments, err := newPaymentDetector(cfg.paymentRules)
	if err != nil {
		return nil, err
	}
	categories, err := newCategorizer(mergeCategoryKeywords(cfg.categoryRules, cfg.extraKeywords))
	if err != nil {
		return nil, err
	}

	return &Parser{
		classifier: classifier,
		payments:   payments,
		categories: categories,
		logger:     cfg.logger,
	}, nil
}

// MustNewParser is NewParser that panics on invalid vocabulary.
func MustNewParser(opts ...Option) *Parser {
	p, err := NewParser(opts...)
	if err != nil {
		panic(fmt.Sprintf("magicnote: %v", err))
	}
	return p
}

var defaultParser = MustNewParser()

// Parse parses text with the built-in vocabulary.
func Parse(text string) (*model.ParsedTransaction, error) {
	return defaultParser.Parse(text)
}

// Parse turns one note into a transaction. On failure the result is nil and
// the error is a *ParseError wrapping ErrNoAmountFound,
// ErrMalformedArithmetic or ErrNoIntentMatched.
func (p *Parser) Parse(text string) (*model.ParsedTransaction, error) {
	txn, err := p.parse(text)
	if err != nil {
		p.logger.Debug("magic note not understood",
			"stage", err.Stage,
			"input_length", len(text),
			"error", err.Err)
		return nil, err
	}
	return txn, nil
}

func (p *Parser) parse(input string) (*model.ParsedTransaction, *ParseError) {
	text := Normalize(input)

	partial, hasPartial := findPartialPayment(text)
	amount, err := p.extractAmount(text, partial, hasPartial)
	if err != nil {
		return nil, failAt(StageStart, input, err)
	}
	if hasPartial && amount.Start < partial.span.end && partial.span.start < amount.End {
		hasPartial = false
	}

	intent, err := p.classifier.Classify(text)
	if err != nil {
		return nil, failAt(StageAmountExtracted, input, err)
	}

	tokens := newTokenState(Tokenize(text))
	tokens.consume(span{start: amount.Start, end: amount.End}, intent.span)

	method, paymentSpans := p.payments.detect(text)
	tokens.consume(paymentSpans...)

	keywordSpans := p.classifier.keywordSpans(text)
	keywordSpans = append(keywordSpans, paymentSpans...)
	keywordSpans = append(keywordSpans, p.categories.keywordSpans(text)...)
	tokens.markKeywords(keywordSpans)

	txn := &model.ParsedTransaction{
		Type:          intent.Type,
		Amount:        amount.Amount,
		PaymentMethod: method,
		Input:         input,
	}

	switch intent.Type {
	case model.TypeSale:
		paid := amount.Amount
		if hasPartial && partial.amount.LessThanOrEqual(amount.Amount) {
			paid = partial.amount
			tokens.consume(partial.span)
		}
		txn.PaidAmount = &paid
	case model.TypeExpense:
		category, where, ok := p.categories.categorize(text)
		if ok {
			tokens.consume(where)
		}
		txn.Category = category
	case model.TypeCredit:
		txn.CreditType = intent.CreditType
	}

	txn.Party = tokens.extractParty()
	txn.Note = tokens.note()

	if err := txn.Validate(); err != nil {
		return nil, failAt(StageEntitiesExtracted, input, err)
	}
	return txn, nil
}

// extractAmount prefers an amount outside the partial-payment clause, so
// "Sold 1000 advance 200" yields 1000. If the clause holds the only number,
// as in "Paid 200 for lunch", that number is the amount.
func (p *Parser) extractAmount(text string, partial partialPayment, hasPartial bool) (AmountMatch, error) {
	if hasPartial {
		match, err := ExtractAmount(maskSpan(text, partial.span))
		if !errors.Is(err, ErrNoAmountFound) {
			return match, err
		}
	}
	return ExtractAmount(text)
}

func mergeCategoryKeywords(rules []CategoryRule, extra map[model.ExpenseCategory][]string) []CategoryRule {
	if len(extra) == 0 {
		return rules
	}

	merged := make([]CategoryRule, 0, len(rules)+len(extra))
	seen := make(map[model.ExpenseCategory]bool, len(rules))
	for _, r := range rules {
		keywords := append([]string(nil), r.Keywords...)
		keywords = append(keywords, extra[r.Category]...)
		merged = append(merged, CategoryRule{Category: r.Category, Keywords: keywords})
		seen[r.Category] = true
	}
	for _, category := range model.ExpenseCategories {
		if kws, ok := extra[category]; ok && !seen[category] && len(kws) > 0 {
			merged = append(merged, CategoryRule{Category: category, Keywords: kws})
		}
	}
	return merged
}
