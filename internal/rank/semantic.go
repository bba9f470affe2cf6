package rank

import (
	"context"
	"fmt"
	"math"

	"github.com/dgallion1/docsight/internal/embed"
)

// ScoreSemantic encodes all section texts in one batch and scores each by
// cosine similarity against the already-encoded query vector. The query is
// encoded once by the caller and reused; no text is encoded more than once
// per request. Section texts are truncated to maxChars before encoding to
// bound inference cost; pass maxChars <= 0 to disable truncation.
func ScoreSemantic(ctx context.Context, embedder embed.Embedder, queryVec []float32, sectionTexts []string, maxChars int) ([]float64, error) {
	scores := make([]float64, len(sectionTexts))
	if len(sectionTexts) == 0 {
		return scores, nil
	}

	texts := make([]string, len(sectionTexts))
	for i, t := range sectionTexts {
		texts[i] = Truncate(t, maxChars)
	}

	vecs, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("encode sections: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("encoder returned %d vectors for %d texts", len(vecs), len(texts))
	}

	for i, vec := range vecs {
		scores[i] = Cosine(queryVec, vec)
	}
	return scores, nil
}

// Truncate cuts text to at most maxChars bytes without splitting a UTF-8
// sequence mid-rune.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	cut := maxChars
	for cut > 0 && text[cut]&0xC0 == 0x80 {
		cut--
	}
	return text[:cut]
}

// Cosine computes cosine similarity between two vectors, in [-1, 1].
// Mismatched or zero-norm vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
