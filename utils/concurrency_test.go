package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(4)
	var done int64

	for i := 0; i < 50; i++ {
		pool.Submit(func() error {
			atomic.AddInt64(&done, 1)
			return nil
		})
	}

	require.NoError(t, pool.Wait())
	assert.EqualValues(t, 50, done)
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	pool := NewWorkerPool(2)
	var running, peak int64

	for i := 0; i < 10; i++ {
		pool.Submit(func() error {
			n := atomic.AddInt64(&running, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&running, -1)
			return nil
		})
	}

	require.NoError(t, pool.Wait())
	assert.LessOrEqual(t, peak, int64(2))
}

func TestWorkerPoolKeepsFirstError(t *testing.T) {
	pool := NewWorkerPool(1)
	first := errors.New("first")

	pool.Submit(func() error { return first })
	pool.Submit(func() error { return errors.New("second") })

	assert.ErrorIs(t, pool.Wait(), first)
}

func TestRetrySingleAttempt(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 1, Logger: NewNopLogger()}
	calls := 0
	boom := errors.New("boom")

	err := r.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return boom
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, boom, err)
}

func TestRetryEventuallySucceeds(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, Logger: NewNopLogger()}
	calls := 0

	err := r.Do(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryGivesUp(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, Logger: NewNopLogger()}
	boom := errors.New("boom")

	err := r.Do(context.Background(), "fetch", func(context.Context) error { return boom })

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fetch failed after 2 attempts")
}

func TestRetryStopsOnCancel(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour, Logger: NewNopLogger()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Do(ctx, "op", func(context.Context) error { return errors.New("boom") })
	assert.ErrorIs(t, err, context.Canceled)
}
