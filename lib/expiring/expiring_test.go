package expiring

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFreshResultIsShared(t *testing.T) {
	ctx := context.Background()
	cache := New[int](time.Minute)

	var calls atomic.Int64
	fetch := func(context.Context) (int, error) {
		calls.Add(1)
		return 42, nil
	}

	v, err := cache.Do(ctx, "k", fetch)
	require.NoError(t, err)
	require.Equal(t, 42, v)

	v, err = cache.Do(ctx, "k", fetch)
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.EqualValues(t, 1, calls.Load())
}

func TestExpiredResultRefetches(t *testing.T) {
	ctx := context.Background()
	cache := New[int](time.Millisecond * 20)

	var calls atomic.Int64
	fetch := func(context.Context) (int, error) {
		calls.Add(1)
		return int(calls.Load()), nil
	}

	v, err := cache.Do(ctx, "k", fetch)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	time.Sleep(time.Millisecond * 30)

	v, err = cache.Do(ctx, "k", fetch)
	require.NoError(t, err)
	require.Equal(t, 2, v)
	require.EqualValues(t, 2, calls.Load())
}

func TestDistinctKeysDoNotShare(t *testing.T) {
	ctx := context.Background()
	cache := New[string](time.Minute)

	var calls atomic.Int64
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		return "v", nil
	}

	_, err := cache.Do(ctx, "a", fetch)
	require.NoError(t, err)
	_, err = cache.Do(ctx, "b", fetch)
	require.NoError(t, err)
	require.EqualValues(t, 2, calls.Load())
}

func TestErrorsAreMemoized(t *testing.T) {
	ctx := context.Background()
	cache := New[int](time.Minute)

	var calls atomic.Int64
	fetch := func(context.Context) (int, error) {
		calls.Add(1)
		return 0, fmt.Errorf("boom")
	}

	_, err := cache.Do(ctx, "k", fetch)
	require.EqualError(t, err, "boom")
	_, err = cache.Do(ctx, "k", fetch)
	require.EqualError(t, err, "boom")
	require.EqualValues(t, 1, calls.Load())
}

func TestConcurrentCallsCollapse(t *testing.T) {
	ctx := context.Background()
	cache := New[int](time.Minute)

	var calls atomic.Int64
	fetch := func(context.Context) (int, error) {
		calls.Add(1)
		time.Sleep(time.Millisecond * 50)
		return 7, nil
	}

	wg := sync.WaitGroup{}
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := cache.Do(ctx, "k", fetch)
			require.NoError(t, err)
			require.Equal(t, 7, v)
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, calls.Load())
}

func TestCallerCancelDoesNotCancelFetch(t *testing.T) {
	cache := New[int](time.Minute)

	started := make(chan struct{})
	var calls atomic.Int64
	fetch := func(fctx context.Context) (int, error) {
		calls.Add(1)
		close(started)
		select {
		case <-fctx.Done():
			return 0, fctx.Err()
		case <-time.After(time.Millisecond * 50):
			return 9, nil
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := cache.Do(ctx, "k", fetch)
	require.ErrorIs(t, err, context.Canceled)

	// the shared fetch kept running and its result is served afterwards
	time.Sleep(time.Millisecond * 80)
	v, err := cache.Do(context.Background(), "k", func(context.Context) (int, error) {
		calls.Add(1)
		return -1, nil
	})
	require.NoError(t, err)
	require.Equal(t, 9, v)
	require.EqualValues(t, 1, calls.Load())
}
