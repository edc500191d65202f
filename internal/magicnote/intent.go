package magicnote

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/mathnote/internal/model"
)

// Intent is the classified meaning of a note.
type Intent struct {
	Type       model.TransactionType
	CreditType model.CreditType
	Rule       string // name of the rule that matched
	span       span
}

var errNoKeywords = errors.New("no keywords")

type compiledRule struct {
	re *regexp.Regexp
	Rule
}

// Classifier decides whether a note is a sale, an expense or a credit.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	rules []compiledRule
}

// NewClassifier compiles the rules and orders them by priority.
func NewClassifier(rules []Rule) (*Classifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(`(?i)\b(?:` + r.Pattern + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %s: %w", r.Name, err)
		}
		compiled = append(compiled, compiledRule{Rule: r, re: re})
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})

	return &Classifier{rules: compiled}, nil
}

// Classify returns the winning intent. Among matching rules the highest
// priority wins; within a priority the earliest match in the text wins.
func (c *Classifier) Classify(text string) (Intent, error) {
	var best *compiledRule
	var bestLoc []int

	for i := range c.rules {
		rule := &c.rules[i]
		if best != nil && rule.Priority < best.Priority {
			break
		}
		loc := rule.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if best == nil || loc[0] < bestLoc[0] {
			best, bestLoc = rule, loc
		}
	}

	if best == nil {
		return Intent{}, ErrNoIntentMatched
	}

	return Intent{
		Type:       best.Type,
		CreditType: best.CreditType,
		Rule:       best.Name,
		span:       spanOf(bestLoc),
	}, nil
}

// keywordSpans returns every intent keyword occurrence in text.
func (c *Classifier) keywordSpans(text string) []span {
	var spans []span
	for _, rule := range c.rules {
		for _, loc := range rule.re.FindAllStringIndex(text, -1) {
			spans = append(spans, spanOf(loc))
		}
	}
	return spans
}

// keywordRe builds a case-insensitive word-boundary alternation. Spaces in
// a keyword match any run of whitespace.
func keywordRe(keywords []string) (*regexp.Regexp, error) {
	alts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		parts := strings.Fields(kw)
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		alts = append(alts, strings.Join(parts, `\s+`))
	}
	if len(alts) == 0 {
		return nil, errNoKeywords
	}
	return regexp.Compile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
}

type compiledPayment struct {
	re     *regexp.Regexp
	method model.PaymentMethod
}

type paymentDetector struct {
	rules []compiledPayment
}

func newPaymentDetector(rules []PaymentRule) (*paymentDetector, error) {
	d := &paymentDetector{}
	for _, r := range rules {
		re, err := keywordRe(r.Keywords)
		if err != nil {
			return nil, fmt.Errorf("failed to compile payment keywords for %s: %w", r.Method, err)
		}
		d.rules = append(d.rules, compiledPayment{method: r.Method, re: re})
	}
	return d, nil
}

// detect returns the first payment rule present anywhere in text, or Cash,
// along with the spans of every payment keyword.
func (d *paymentDetector) detect(text string) (model.PaymentMethod, []span) {
	method := model.PaymentCash
	found := false
	var spans []span

	for _, r := range d.rules {
		locs := r.re.FindAllStringIndex(text, -1)
		if len(locs) > 0 && !found {
			method, found = r.method, true
		}
		for _, loc := range locs {
			spans = append(spans, spanOf(loc))
		}
	}
	return method, spans
}

type compiledCategory struct {
	re       *regexp.Regexp
	category model.ExpenseCategory
}

type categorizer struct {
	rules []compiledCategory
}

func newCategorizer(rules []CategoryRule) (*categorizer, error) {
	c := &categorizer{}
	for _, r := range rules {
		if !r.Category.Valid() {
			return nil, fmt.Errorf("unknown expense category %q", r.Category)
		}
		re, err := keywordRe(r.Keywords)
		if err != nil {
			return nil, fmt.Errorf("failed to compile category keywords for %s: %w", r.Category, err)
		}
		c.rules = append(c.rules, compiledCategory{category: r.Category, re: re})
	}
	return c, nil
}

// categorize returns the first rule in table order that matches text.
func (c *categorizer) categorize(text string) (model.ExpenseCategory, span, bool) {
	for _, r := range c.rules {
		if loc := r.re.FindStringIndex(text); loc != nil {
			return r.category, spanOf(loc), true
		}
	}
	return model.CategoryOther, span{}, false
}

func (c *categorizer) keywordSpans(text string) []span {
	var spans []span
	for _, r := range c.rules {
		for _, loc := range r.re.FindAllStringIndex(text, -1) {
			spans = append(spans, spanOf(loc))
		}
	}
	return spans
}
