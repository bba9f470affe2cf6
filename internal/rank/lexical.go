package rank

import "math"

// LexicalConfig holds the BM25 free parameters: k1 controls term-frequency
// saturation, b controls length normalization strength.
type LexicalConfig struct {
	K1 float64
	B  float64
}

// DefaultLexicalConfig returns the stock BM25 parameters.
func DefaultLexicalConfig() LexicalConfig {
	return LexicalConfig{K1: 1.5, B: 0.75}
}

// ScoreLexical computes a BM25 score for every section text against the
// query tokens. Each section counts as one document for IDF purposes; the
// document frequency and average length are taken over the whole pooled
// section set, so scores are only comparable within one pool. A section with
// zero query-term overlap scores exactly 0.
func ScoreLexical(queryTokens []string, sectionTexts []string, cfg LexicalConfig) []float64 {
	n := len(sectionTexts)
	scores := make([]float64, n)
	if n == 0 || len(queryTokens) == 0 {
		return scores
	}

	tfs := make([]map[string]int, n)
	lengths := make([]int, n)
	totalLen := 0
	for i, text := range sectionTexts {
		tokens := Tokenize(text)
		tfs[i] = termFreq(tokens)
		lengths[i] = len(tokens)
		totalLen += len(tokens)
	}
	avgLen := float64(totalLen) / float64(n)
	if avgLen == 0 {
		return scores
	}

	// Deduplicate query terms; repeating a term in the query does not
	// multiply its contribution.
	qtf := termFreq(queryTokens)

	df := make(map[string]int, len(qtf))
	for term := range qtf {
		for i := range tfs {
			if tfs[i][term] > 0 {
				df[term]++
			}
		}
	}

	for i := range sectionTexts {
		var score float64
		for term := range qtf {
			tf := float64(tfs[i][term])
			if tf == 0 {
				continue
			}
			idf := math.Log(1 + (float64(n)-float64(df[term])+0.5)/(float64(df[term])+0.5))
			norm := 1 - cfg.B + cfg.B*float64(lengths[i])/avgLen
			score += idf * tf * (cfg.K1 + 1) / (tf + cfg.K1*norm)
		}
		scores[i] = score
	}

	return scores
}
