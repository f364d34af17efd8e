package ratelimit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koltukutsu/listele/pkg/ratelimit"
)

func TestLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows up to limit", func(t *testing.T) {
		t.Parallel()
		limiter, err := ratelimit.New(ratelimit.NewMemoryStore(), ratelimit.Config{
			Limit:  3,
			Window: time.Minute,
		})
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			result, err := limiter.Allow(context.Background(), "ip")
			require.NoError(t, err)
			assert.True(t, result.Allowed(), "request %d should be allowed", i+1)
		}

		result, err := limiter.Allow(context.Background(), "ip")
		require.NoError(t, err)
		assert.False(t, result.Allowed())
		assert.Positive(t, result.RetryAfter())
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		limiter, err := ratelimit.New(ratelimit.NewMemoryStore(), ratelimit.Config{
			Limit:  1,
			Window: time.Minute,
		})
		require.NoError(t, err)

		first, err := limiter.Allow(context.Background(), "a")
		require.NoError(t, err)
		assert.True(t, first.Allowed())

		other, err := limiter.Allow(context.Background(), "b")
		require.NoError(t, err)
		assert.True(t, other.Allowed())
	})

	t.Run("window resets", func(t *testing.T) {
		t.Parallel()
		limiter, err := ratelimit.New(ratelimit.NewMemoryStore(), ratelimit.Config{
			Limit:  1,
			Window: 20 * time.Millisecond,
		})
		require.NoError(t, err)

		_, err = limiter.Allow(context.Background(), "ip")
		require.NoError(t, err)

		blocked, err := limiter.Allow(context.Background(), "ip")
		require.NoError(t, err)
		require.False(t, blocked.Allowed())

		time.Sleep(30 * time.Millisecond)

		again, err := limiter.Allow(context.Background(), "ip")
		require.NoError(t, err)
		assert.True(t, again.Allowed())
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		t.Parallel()
		_, err := ratelimit.New(ratelimit.NewMemoryStore(), ratelimit.Config{Limit: 0, Window: time.Minute})
		assert.ErrorIs(t, err, ratelimit.ErrInvalidConfig)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimit.New(ratelimit.NewMemoryStore(), ratelimit.Config{
		Limit:  1,
		Window: time.Minute,
	})
	require.NoError(t, err)

	handler := ratelimit.Middleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/", nil)
	req.RemoteAddr = "192.0.2.1:1000"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
