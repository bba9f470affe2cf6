package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// Embedder is a deterministic test double for embed.Embedder. The default
// behavior derives a pseudo-random unit vector from an FNV hash of the text,
// so identical text always embeds identically; custom behavior can be
// injected through the function fields.
type Embedder struct {
	EmbedQueryFunc func(ctx context.Context, text string) ([]float32, error)
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	callCount int
}

// Dim is the dimensionality of generated mock vectors.
const Dim = 384

func New() *Embedder {
	return &Embedder{}
}

func (m *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	m.callCount++
	if m.EmbedQueryFunc != nil {
		return m.EmbedQueryFunc(ctx, text)
	}
	return deterministicVector(text, Dim), nil
}

func (m *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++
	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		vecs[i] = deterministicVector(t, Dim)
	}
	return vecs, nil
}

// CallCount returns the number of embed calls made so far.
func (m *Embedder) CallCount() int {
	return m.callCount
}

func deterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vec := make([]float32, dim)
	for i := range vec {
		seed = seed*1664525 + 1013904223 // LCG constants
		vec[i] = float32(seed%1000) / 1000.0
	}

	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares > 0 {
		inv := float32(1.0 / math.Sqrt(sumSquares))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec
}
