package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"workscope/internal/calendar/models"
	id "workscope/pkg/domain"
)

// DefaultStatsCacheTTL bounds how stale a cached per-workspace rollup may be.
var DefaultStatsCacheTTL = 60 * time.Second

// StatsObserver receives cache hit/miss signals; wired to engine metrics.
type StatsObserver interface {
	StatsCacheHit()
	StatsCacheMiss()
}

// CachedStore decorates a Store with a Redis cache for the per-workspace
// rollups. Event reads pass through untouched. Cache failures degrade to a
// direct store fetch and are logged, never surfaced: the cache is an
// optimization, not a dependency.
type CachedStore struct {
	Store

	rdb      *redis.Client
	ttl      time.Duration
	logger   *slog.Logger
	observer StatsObserver
}

// CacheOption configures a CachedStore.
type CacheOption func(*CachedStore)

// WithCacheTTL overrides the rollup TTL.
func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *CachedStore) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger attaches a structured logger.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *CachedStore) { c.logger = logger }
}

// WithCacheObserver attaches hit/miss observation.
func WithCacheObserver(o StatsObserver) CacheOption {
	return func(c *CachedStore) { c.observer = o }
}

func NewCachedStore(inner Store, rdb *redis.Client, opts ...CacheOption) *CachedStore {
	c := &CachedStore{
		Store: inner,
		rdb:   rdb,
		ttl:   DefaultStatsCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CachedStore) CalendarStats(ctx context.Context, ws id.WorkspaceID, user id.UserID) (models.CalendarStats, error) {
	key := "workscope:calstats:" + ws.String() + ":" + user.String()

	var cached models.CalendarStats
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	stats, err := c.Store.CalendarStats(ctx, ws, user)
	if err != nil {
		return models.CalendarStats{}, err
	}
	c.fill(ctx, key, stats)
	return stats, nil
}

func (c *CachedStore) ReportDeadlineStats(ctx context.Context, ws id.WorkspaceID) (models.ReportDeadlineStats, error) {
	key := "workscope:deadlinestats:" + ws.String()

	var cached models.ReportDeadlineStats
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	stats, err := c.Store.ReportDeadlineStats(ctx, ws)
	if err != nil {
		return models.ReportDeadlineStats{}, err
	}
	c.fill(ctx, key, stats)
	return stats, nil
}

// lookup returns true when the key was present and decoded.
func (c *CachedStore) lookup(ctx context.Context, key string, dest any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) && c.logger != nil {
			c.logger.DebugContext(ctx, "stats cache lookup failed", "key", key, "error", err)
		}
		c.miss()
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		if c.logger != nil {
			c.logger.DebugContext(ctx, "stats cache entry corrupt", "key", key, "error", err)
		}
		c.miss()
		return false
	}
	c.hit()
	return true
}

func (c *CachedStore) fill(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.DebugContext(ctx, "stats cache fill failed", "key", key, "error", err)
	}
}

func (c *CachedStore) hit() {
	if c.observer != nil {
		c.observer.StatsCacheHit()
	}
}

func (c *CachedStore) miss() {
	if c.observer != nil {
		c.observer.StatsCacheMiss()
	}
}
