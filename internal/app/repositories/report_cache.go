package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/yigit/placement-portal/internal/app/models"
)

const (
	// AnalyticsGenerationKey counts invalidations of the analytics report.
	AnalyticsGenerationKey = "placement:analytics:generation"
	analyticsReportPrefix  = "placement:analytics:report:"
)

// ReportCache stores the analytics report per generation. Invalidate starts
// a new generation, so a report computed from reads taken before an
// invalidation is stored under a generation nobody reads any more.
type ReportCache interface {
	// Get returns the report cached for the current generation, or nil on a
	// miss, together with that generation.
	Get(ctx context.Context) (*models.AnalyticsReport, int64, error)
	// Set stores report as the result for generation gen.
	Set(ctx context.Context, gen int64, report *models.AnalyticsReport) error
	Invalidate(ctx context.Context) error
}

// RedisReportCache keeps the generation counter and one JSON report per
// generation. Superseded reports expire with the TTL.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReportCache creates a cache whose entries expire after ttl
func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{client: client, ttl: ttl}
}

func reportKey(gen int64) string {
	return analyticsReportPrefix + strconv.FormatInt(gen, 10)
}

func (c *RedisReportCache) Get(ctx context.Context) (*models.AnalyticsReport, int64, error) {
	gen, err := c.client.Get(ctx, AnalyticsGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, fmt.Errorf("redis get generation failed: %w", err)
	}

	raw, err := c.client.Get(ctx, reportKey(gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, nil
		}
		return nil, 0, fmt.Errorf("redis get failed: %w", err)
	}

	var report models.AnalyticsReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, 0, fmt.Errorf("cached report is corrupt: %w", err)
	}
	return &report, gen, nil
}

func (c *RedisReportCache) Set(ctx context.Context, gen int64, report *models.AnalyticsReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := c.client.Set(ctx, reportKey(gen), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, AnalyticsGenerationKey).Err(); err != nil {
		return fmt.Errorf("redis incr failed: %w", err)
	}
	return nil
}

// NoopReportCache never stores anything. It is used when Redis is disabled.
type NoopReportCache struct{}

func (NoopReportCache) Get(context.Context) (*models.AnalyticsReport, int64, error) {
	return nil, 0, nil
}
func (NoopReportCache) Set(context.Context, int64, *models.AnalyticsReport) error { return nil }
func (NoopReportCache) Invalidate(context.Context) error { return nil }
