package dataprocessing

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storepulse/internal/shared/testutil"
	"storepulse/pkg/contracts/domain"
)

func TestDatasetCache_LoadsOnce(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	var calls int32

	cache := NewDatasetCache(logger, WithLoadFunc(func(path, sheet string) (*domain.Dataset, error) {
		atomic.AddInt32(&calls, 1)
		return sampleDataset(), nil
	}))

	first, err := cache.Load(context.Background(), "stores.xlsx", "")
	require.NoError(t, err)
	second, err := cache.Load(context.Background(), "stores.xlsx", "")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, cache.Loaded("stores.xlsx", ""))
	assert.False(t, cache.Loaded("stores.xlsx", "Other"))
	testutil.AssertLogAttr(t, logs, "component", "dataset_cache")
}

func TestDatasetCache_ConcurrentFirstLoad(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	var calls int32
	release := make(chan struct{})

	cache := NewDatasetCache(logger, WithLoadFunc(func(path, sheet string) (*domain.Dataset, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return sampleDataset(), nil
	}))

	const n = 8
	var wg sync.WaitGroup
	results := make([]*domain.Dataset, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds, err := cache.Load(context.Background(), "stores.xlsx", "")
			assert.NoError(t, err)
			results[i] = ds
		}(i)
	}

	// give the goroutines a chance to queue behind the first load
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, ds := range results {
		assert.Same(t, results[0], ds)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDatasetCache_ErrorsAreNotCached(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	var calls int32

	cache := NewDatasetCache(logger, WithLoadFunc(func(path, sheet string) (*domain.Dataset, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, fmt.Errorf("file locked")
		}
		return sampleDataset(), nil
	}))

	_, err := cache.Load(context.Background(), "stores.xlsx", "")
	require.Error(t, err)
	assert.False(t, cache.Loaded("stores.xlsx", ""))
	assert.True(t, logs.ContainsMessage("Dataset load failed"))

	ds, err := cache.Load(context.Background(), "stores.xlsx", "")
	require.NoError(t, err)
	assert.Equal(t, 6, ds.Len())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDatasetCache_ContextCancelled(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	release := make(chan struct{})
	defer close(release)

	cache := NewDatasetCache(logger, WithLoadFunc(func(path, sheet string) (*domain.Dataset, error) {
		<-release
		return sampleDataset(), nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cache.Load(ctx, "stores.xlsx", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDatasetCache_RealWorkbook(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	path := testutil.WriteSampleWorkbook(t)

	cache := NewDatasetCache(logger)
	ds, err := cache.Load(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, 6, ds.Len())
}
