package cache

import (
	"context"
	"time"
)

// ReportCache caches rendered report payloads as JSON blobs keyed by
// tenant and period. Callers treat a miss and a cache error the same
// way: recompute from the database.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// NoopReportCache is used when no Redis address is configured.
type NoopReportCache struct{}

func (NoopReportCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

func (NoopReportCache) Invalidate(_ context.Context, _ string) error {
	return nil
}
