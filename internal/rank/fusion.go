package rank

import (
	"sort"

	"github.com/dgallion1/docsight/internal/outline"
)

// ScoredSection is one pooled section with its relevance signals. Rank is
// assigned only after the total ordering is computed.
type ScoredSection struct {
	Section  outline.Section
	DocOrder int // input order of the owning document

	LexicalScore  float64
	SemanticScore float64
	FusedScore    float64
	Rank          int
}

// Fuse min-max normalizes both signals independently across the whole pool,
// combines them as alpha*lexical + (1-alpha)*semantic, and sorts the pool
// descending by fused score. Ties break by ascending document input order,
// then page, then section start index, so repeated runs over identical
// inputs produce identical rankings. Rank is 1..N in sorted order.
func Fuse(sections []ScoredSection, alpha float64) {
	lex := make([]float64, len(sections))
	sem := make([]float64, len(sections))
	for i, s := range sections {
		lex[i] = s.LexicalScore
		sem[i] = s.SemanticScore
	}
	minMaxNormalize(lex)
	minMaxNormalize(sem)

	for i := range sections {
		sections[i].LexicalScore = lex[i]
		sections[i].SemanticScore = sem[i]
		sections[i].FusedScore = alpha*lex[i] + (1-alpha)*sem[i]
	}

	sort.SliceStable(sections, func(i, j int) bool {
		a, b := sections[i], sections[j]
		if a.FusedScore != b.FusedScore {
			return a.FusedScore > b.FusedScore
		}
		if a.DocOrder != b.DocOrder {
			return a.DocOrder < b.DocOrder
		}
		if a.Section.Page != b.Section.Page {
			return a.Section.Page < b.Section.Page
		}
		return a.Section.StartIndex < b.Section.StartIndex
	})

	for i := range sections {
		sections[i].Rank = i + 1
	}
}

// minMaxNormalize rescales values to [0,1] in place. When every value is
// equal there is no scale to recover, so every member maps to 0.5.
func minMaxNormalize(vals []float64) {
	if len(vals) == 0 {
		return
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		for i := range vals {
			vals[i] = 0.5
		}
		return
	}
	for i := range vals {
		vals[i] = (vals[i] - lo) / (hi - lo)
	}
}
