package magicnote

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

const numberPattern = `\d+(?:\.\d+)?`

// amountRe finds amount candidates. Groups:
//
//	1 left operand
//	2 operator, 3 right operand, 4 start of a chained third operand
//	5 dangling operator with no right operand
var amountRe = regexp.MustCompile(
	`\b(` + numberPattern + `)` +
		`(?:\s*([-+*/])\s*(` + numberPattern + `)(\s*[-+*/]\s*\d)?|([-+*/])(?:\s|$))?`,
)

// partialPaymentRe finds sale phrasing such as "advance 200".
var partialPaymentRe = regexp.MustCompile(`(?i)\b(?:advance|received|paid)\s+(` + numberPattern + `)\b`)

// AmountMatch is the amount found in a note.
type AmountMatch struct {
	Amount decimal.Decimal
	Span   string // matched text, e.g. "50*8"
	Start  int
	End    int
}

// ExtractAmount returns the first valid positive amount in text. Plain
// numbers and two-operand expressions are accepted. Candidates that are
// malformed or not positive are skipped in favour of later ones.
func ExtractAmount(text string) (AmountMatch, error) {
	var malformed error
	var nonPositive string

	for _, loc := range amountRe.FindAllStringSubmatchIndex(text, -1) {
		value, err := evaluateCandidate(text, loc)
		if err != nil {
			if malformed == nil {
				malformed = err
			}
			continue
		}
		if !value.IsPositive() {
			if nonPositive == "" {
				nonPositive = text[loc[0]:loc[1]]
			}
			continue
		}
		return AmountMatch{
			Amount: value,
			Span:   text[loc[0]:loc[1]],
			Start:  loc[0],
			End:    loc[1],
		}, nil
	}

	if malformed != nil {
		return AmountMatch{}, malformed
	}
	if nonPositive != "" {
		return AmountMatch{}, fmt.Errorf("%w: %q is not a positive amount", ErrNoAmountFound, nonPositive)
	}
	return AmountMatch{}, ErrNoAmountFound
}

func evaluateCandidate(text string, loc []int) (decimal.Decimal, error) {
	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return text[loc[2*i]:loc[2*i+1]]
	}

	if op := group(5); op != "" {
		return decimal.Zero, fmt.Errorf("%w: %q has no right operand", ErrMalformedArithmetic, text[loc[0]:loc[1]])
	}
	if group(4) != "" {
		return decimal.Zero, fmt.Errorf("%w: %q has more than one operator", ErrMalformedArithmetic, text[loc[0]:loc[1]])
	}

	left, err := decimal.NewFromString(group(1))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrMalformedArithmetic, err)
	}

	op := group(2)
	if op == "" {
		return left, nil
	}

	right, err := decimal.NewFromString(group(3))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrMalformedArithmetic, err)
	}
	return Evaluate(left, op, right)
}

// Evaluate applies one binary operator. Division by zero is an error.
func Evaluate(left decimal.Decimal, op string, right decimal.Decimal) (decimal.Decimal, error) {
	switch op {
	case "+":
		return left.Add(right), nil
	case "-":
		return left.Sub(right), nil
	case "*":
		return left.Mul(right), nil
	case "/":
		if right.IsZero() {
			return decimal.Zero, fmt.Errorf("%w: division by zero", ErrMalformedArithmetic)
		}
		return left.Div(right), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown operator %q", ErrMalformedArithmetic, op)
	}
}

// partialPayment is a sale's "advance 200" style clause.
type partialPayment struct {
	amount decimal.Decimal
	span   span
}

func findPartialPayment(text string) (partialPayment, bool) {
	loc := partialPaymentRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return partialPayment{}, false
	}
	value, err := decimal.NewFromString(text[loc[2]:loc[3]])
	if err != nil || !value.IsPositive() {
		return partialPayment{}, false
	}
	return partialPayment{amount: value, span: spanOf(loc)}, true
}

// maskSpan blanks out s so later searches skip it without shifting offsets.
func maskSpan(text string, s span) string {
	masked := []byte(text)
	for i := s.start; i < s.end; i++ {
		masked[i] = ' '
	}
	return string(masked)
}
