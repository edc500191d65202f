package magicnote

import (
	"strings"
)

// partyPrepositions introduce a counterparty: "to Rahul", "from Ramesh".
var partyPrepositions = map[string]bool{"to": true, "from": true, "with": true}

const maxPartyWords = 3

// tokenState tracks which tokens later stages may still use.
type tokenState struct {
	tokens   []Token
	consumed []bool // claimed by amount, intent, payment, category or partial payment
	keyword  []bool // overlaps any vocabulary keyword
	party    []bool
}

func newTokenState(tokens []Token) *tokenState {
	return &tokenState{
		tokens:   tokens,
		consumed: make([]bool, len(tokens)),
		keyword:  make([]bool, len(tokens)),
		party:    make([]bool, len(tokens)),
	}
}

func (ts *tokenState) consume(spans ...span) {
	for i, t := range ts.tokens {
		for _, s := range spans {
			if t.overlaps(s) {
				ts.consumed[i] = true
			}
		}
	}
}

func (ts *tokenState) markKeywords(spans []span) {
	for i, t := range ts.tokens {
		for _, s := range spans {
			if t.overlaps(s) {
				ts.keyword[i] = true
				break
			}
		}
	}
}

// nameCandidate reports whether token i could be part of a party name.
func (ts *tokenState) nameCandidate(i int) bool {
	t := ts.tokens[i]
	return !ts.consumed[i] &&
		!ts.keyword[i] &&
		t.IsWord() &&
		!t.IsNumeric() &&
		!t.IsFiller() &&
		!nonNameWords[t.Lower]
}

// extractParty finds the counterparty. The preposition tier takes the
// capitalized words following "to", "from" or "with".
// The fallback tier takes the last capitalized word in the sentence; it is
// a heuristic and can pick up ordinary capitalized words.
func (ts *tokenState) extractParty() string {
	if party := ts.prepositionParty(); party != "" {
		return party
	}
	return ts.fallbackParty()
}

func (ts *tokenState) prepositionParty() string {
	for i, t := range ts.tokens {
		if ts.consumed[i] || !partyPrepositions[t.Lower] || t.Break {
			continue
		}
		first := i + 1
		if first >= len(ts.tokens) || !ts.nameCandidate(first) || !ts.tokens[first].IsCapitalized() {
			continue
		}

		words := make([]string, 0, maxPartyWords)
		for k := first; k < len(ts.tokens) && len(words) < maxPartyWords; k++ {
			if !ts.nameCandidate(k) || !ts.tokens[k].IsCapitalized() {
				break
			}
			words = append(words, ts.tokens[k].Text)
			ts.party[k] = true
			if ts.tokens[k].Break {
				break
			}
		}
		ts.party[i] = true
		return strings.Join(words, " ")
	}
	return ""
}

func (ts *tokenState) fallbackParty() string {
	for i := len(ts.tokens) - 1; i >= 0; i-- {
		if ts.nameCandidate(i) && ts.tokens[i].IsCapitalized() {
			ts.party[i] = true
			return ts.tokens[i].Text
		}
	}
	return ""
}

// note joins the words no other rule claimed.
func (ts *tokenState) note() string {
	words := make([]string, 0, len(ts.tokens))
	for i, t := range ts.tokens {
		if ts.consumed[i] || ts.party[i] || t.Text == "" || t.IsFiller() {
			continue
		}
		words = append(words, t.Text)
	}
	return strings.Join(words, " ")
}
