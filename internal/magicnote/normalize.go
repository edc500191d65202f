package magicnote

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	rupeeMarkerRe = regexp.MustCompile(`(?i)₹|\brs\b\.?|\binr\b|\brupees?\b`)
	rsPrefixRe    = regexp.MustCompile(`(?i)\brs\.?(\d)`)
	slashDashRe   = regexp.MustCompile(`(\d)/-`)
	digitGroupRe  = regexp.MustCompile(`(\d),(\d{2,3})\b`)
)

// fillerWords never form part of a party name or a note.
var fillerWords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "and": true,
	"on": true, "for": true, "to": true, "from": true, "with": true,
	"by": true, "via": true, "at": true, "in": true, "through": true,
	"using": true, "worth": true, "amount": true,
}

// nonNameWords are often capitalized but are never a counterparty.
var nonNameWords = map[string]bool{
	"i": true, "me": true, "my": true, "we": true, "our": true, "us": true,
	"today": true, "yesterday": true, "tomorrow": true, "ok": true,
	"sir": true, "madam": true, "total": true,
}

// Normalize prepares raw note text for extraction. It drops rupee markers
// (including the "500/-" suffix), joins digit groups so "1,00,000" becomes
// "100000", maps × and ÷ to * and /, and collapses whitespace. Letter case
// is preserved.
func Normalize(text string) string {
	text = strings.NewReplacer("×", "*", "÷", "/").Replace(text)
	text = rsPrefixRe.ReplaceAllString(text, " $1")
	text = rupeeMarkerRe.ReplaceAllString(text, " ")
	text = slashDashRe.ReplaceAllString(text, "$1")

	for {
		joined := digitGroupRe.ReplaceAllString(text, "$1$2")
		if joined == text {
			break
		}
		text = joined
	}

	return strings.Join(strings.Fields(text), " ")
}

// Token is one whitespace-separated word of normalized text.
type Token struct {
	Text  string // word with surrounding punctuation removed
	Lower string
	Start int // byte offset of the raw word in the normalized text
	End   int
	Break bool // raw word ended in a separator such as a comma
}

// IsNumeric reports whether the token contains a digit.
func (t Token) IsNumeric() bool {
	return strings.IndexFunc(t.Text, unicode.IsDigit) >= 0
}

// IsWord reports whether the token contains a letter.
func (t Token) IsWord() bool {
	return strings.IndexFunc(t.Text, unicode.IsLetter) >= 0
}

// IsFiller reports whether the token is a filler word.
func (t Token) IsFiller() bool {
	return fillerWords[t.Lower]
}

// IsCapitalized reports whether the token starts with an upper-case letter.
func (t Token) IsCapitalized() bool {
	for _, r := range t.Text {
		return unicode.IsUpper(r)
	}
	return false
}

func (t Token) overlaps(s span) bool {
	return t.Start < s.end && s.start < t.End
}

// Tokenize splits normalized text into tokens, keeping byte offsets so
// tokens can be matched against regex spans.
func Tokenize(text string) []Token {
	var tokens []Token
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		raw := text[start:end]
		trimmed := strings.TrimFunc(raw, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		tokens = append(tokens, Token{
			Text:  trimmed,
			Lower: strings.ToLower(trimmed),
			Start: start,
			End:   end,
			Break: strings.ContainsAny(raw[len(raw)-1:], ",;:.!?"),
		})
		start = -1
	}

	for i, r := range text {
		if unicode.IsSpace(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(text))

	return tokens
}

// span is a half-open byte range of normalized text.
type span struct {
	start int
	end   int
}

func spanOf(loc []int) span {
	return span{start: loc[0], end: loc[1]}
}
