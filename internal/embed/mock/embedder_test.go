package mock

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicVectors(t *testing.T) {
	ctx := context.Background()
	m := New()

	t.Run("same text same vector", func(t *testing.T) {
		a, err := m.EmbedQuery(ctx, "investment analyst")
		require.NoError(t, err)
		b, err := m.EmbedQuery(ctx, "investment analyst")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("different text different vector", func(t *testing.T) {
		a, err := m.EmbedQuery(ctx, "alpha")
		require.NoError(t, err)
		b, err := m.EmbedQuery(ctx, "beta")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("vectors are unit length", func(t *testing.T) {
		v, err := m.EmbedQuery(ctx, "some text")
		require.NoError(t, err)
		require.Len(t, v, Dim)

		var norm float64
		for _, x := range v {
			norm += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-4)
	})

	t.Run("batch matches single", func(t *testing.T) {
		single, err := m.EmbedQuery(ctx, "shared text")
		require.NoError(t, err)
		batch, err := m.EmbedTexts(ctx, []string{"shared text"})
		require.NoError(t, err)
		require.Len(t, batch, 1)
		assert.Equal(t, single, batch[0])
	})
}

func TestInjection(t *testing.T) {
	ctx := context.Background()

	t.Run("query override", func(t *testing.T) {
		m := New()
		m.EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("down")
		}
		_, err := m.EmbedQuery(ctx, "anything")
		assert.Error(t, err)
	})

	t.Run("call count", func(t *testing.T) {
		m := New()
		_, _ = m.EmbedQuery(ctx, "one")
		_, _ = m.EmbedTexts(ctx, []string{"two"})
		assert.Equal(t, 2, m.CallCount())
	})
}
