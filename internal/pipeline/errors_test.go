package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docsight/internal/embed/mock"
)

func TestKindOf(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		err := Errorf(KindInvalidQuery, "persona missing")
		assert.Equal(t, KindInvalidQuery, KindOf(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("handling request: %w", Errorf(KindTimeout, "deadline"))
		assert.Equal(t, KindTimeout, KindOf(err))
	})

	t.Run("unclassified", func(t *testing.T) {
		assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
		assert.Equal(t, Kind(""), KindOf(nil))
	})
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Kind: KindModelUnavailable, Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "model_unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestEncoderErrClassification(t *testing.T) {
	a := newTestAnalyzer(t, mock.New())

	t.Run("deadline exceeded is a timeout", func(t *testing.T) {
		err := a.encoderErr(context.Background(), context.DeadlineExceeded)
		assert.Equal(t, KindTimeout, KindOf(err))
	})

	t.Run("expired context is a timeout regardless of cause", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()

		err := a.encoderErr(ctx, errors.New("connection reset"))
		assert.Equal(t, KindTimeout, KindOf(err))
	})

	t.Run("other failures mean the model is unavailable", func(t *testing.T) {
		err := a.encoderErr(context.Background(), errors.New("connection refused"))
		require.Error(t, err)
		assert.Equal(t, KindModelUnavailable, KindOf(err))
	})
}
