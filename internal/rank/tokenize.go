package rank

import (
	"strings"
	"unicode"
)

// Stop words excluded from lexical scoring.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "were": true, "to": true, "of": true, "and": true, "or": true,
	"in": true, "that": true, "have": true, "has": true, "had": true,
	"it": true, "its": true, "for": true, "not": true, "on": true,
	"with": true, "as": true, "you": true, "do": true, "at": true,
	"this": true, "but": true, "by": true, "from": true, "they": true,
	"their": true, "he": true, "she": true, "his": true, "her": true,
	"we": true, "our": true, "all": true, "can": true, "will": true,
	"what": true, "when": true, "where": true, "who": true, "how": true,
	"why": true, "which": true, "there": true, "into": true, "about": true,
}

// Tokenize lowercases text, splits on non-alphanumeric runes, and drops stop
// words and single-character tokens. Query and section text go through the
// same tokenizer so term matching is symmetric.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// termFreq counts token occurrences.
func termFreq(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}
