package dataprocessing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"storepulse/internal/infrastructure"
	"storepulse/pkg/contracts/domain"
)

// LoadFunc reads a dataset from disk
type LoadFunc func(path, sheet string) (*domain.Dataset, error)

// DatasetCache memoizes loaded datasets for the lifetime of the process.
// Entries are never evicted. Concurrent first loads of the same file share
// one read, and failed loads are not remembered.
type DatasetCache struct {
	mu      sync.RWMutex
	entries map[string]*domain.Dataset
	group   singleflight.Group

	load    LoadFunc
	logger  *slog.Logger
	metrics *infrastructure.BusinessMetrics
}

// CacheOption configures a DatasetCache
type CacheOption func(*DatasetCache)

// WithLoadFunc replaces the workbook parser, mainly for tests
func WithLoadFunc(fn LoadFunc) CacheOption {
	return func(c *DatasetCache) {
		c.load = fn
	}
}

// WithMetrics records load and cache-hit metrics
func WithMetrics(m *infrastructure.BusinessMetrics) CacheOption {
	return func(c *DatasetCache) {
		c.metrics = m
	}
}

// NewDatasetCache creates an empty cache backed by ParseFile
func NewDatasetCache(logger *slog.Logger, opts ...CacheOption) *DatasetCache {
	c := &DatasetCache{
		entries: make(map[string]*domain.Dataset),
		load:    ParseFile,
		logger:  logger.With(slog.String("component", "dataset_cache")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func cacheKey(path, sheet string) string {
	return path + "\x00" + sheet
}

// Load returns the dataset for path, reading the file only the first time.
// The returned Dataset is shared and must not be modified.
func (c *DatasetCache) Load(ctx context.Context, path, sheet string) (*domain.Dataset, error) {
	key := cacheKey(path, sheet)

	c.mu.RLock()
	ds, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		infrastructure.RecordDatasetCacheHit(ctx, c.metrics)
		return ds, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		// A concurrent caller may have finished while we queued
		c.mu.RLock()
		cached, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		start := time.Now()
		loaded, err := c.load(path, sheet)
		duration := time.Since(start)

		if err != nil {
			infrastructure.RecordDatasetLoad(ctx, c.metrics, 0, 0, duration, err)
			c.logger.ErrorContext(ctx, "Dataset load failed",
				slog.String("path", path),
				slog.String("error", err.Error()))
			return nil, err
		}

		infrastructure.RecordDatasetLoad(ctx, c.metrics, loaded.Len(), loaded.DroppedRows, duration, nil)
		c.logger.InfoContext(ctx, "Dataset loaded",
			slog.String("path", path),
			slog.String("sheet", loaded.Sheet),
			slog.Int("rows", loaded.Len()),
			slog.Int("dropped_rows", loaded.DroppedRows),
			slog.Duration("duration", duration))

		c.mu.Lock()
		c.entries[key] = loaded
		c.mu.Unlock()

		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Dataset), nil
	}
}

// Loaded reports whether path is already cached
func (c *DatasetCache) Loaded(path, sheet string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[cacheKey(path, sheet)]
	return ok
}
