package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/pkg/logger"
	"github.com/malenagianoglio/ventas-eventos/pkg/redis"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// Cache key prefixes
	reportKeyPrefix        = "ventas:report:"
	reportGenerationSuffix = ":gen"

	// Default TTL for report caches
	reportCacheTTL = 30 * time.Second
)

// CachedReportRepository wraps ReportRepository with Redis caching.
// Keys carry a per-event generation so invalidation is a single INCR.
type CachedReportRepository struct {
	repo  ReportRepository
	cache *redis.Client
	ttl   time.Duration
	group singleflight.Group
	log   *logger.Logger
}

// NewCachedReportRepository creates a new CachedReportRepository
func NewCachedReportRepository(repo ReportRepository, cache *redis.Client, ttl time.Duration) *CachedReportRepository {
	if ttl <= 0 {
		ttl = reportCacheTTL
	}
	return &CachedReportRepository{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   logger.Get().With(zap.String("component", "report_cache")),
	}
}

// Summary returns the cached summary or loads it from the store
func (r *CachedReportRepository) Summary(ctx context.Context, eventID int64) (*domain.SalesSummary, error) {
	var out domain.SalesSummary
	err := r.cached(ctx, eventID, "summary", &out, func() (interface{}, error) {
		return r.repo.Summary(ctx, eventID)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ProductBreakdown returns the cached breakdown or loads it from the store
func (r *CachedReportRepository) ProductBreakdown(ctx context.Context, eventID int64) ([]*domain.ProductSales, error) {
	out := []*domain.ProductSales{}
	err := r.cached(ctx, eventID, "products", &out, func() (interface{}, error) {
		return r.repo.ProductBreakdown(ctx, eventID)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaleHistory returns the cached history or loads it from the store
func (r *CachedReportRepository) SaleHistory(ctx context.Context, eventID int64) ([]*domain.Sale, error) {
	out := []*domain.Sale{}
	err := r.cached(ctx, eventID, "history", &out, func() (interface{}, error) {
		return r.repo.SaleHistory(ctx, eventID)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// InvalidateEvent bumps the event generation so cached reports are skipped
func (r *CachedReportRepository) InvalidateEvent(ctx context.Context, eventID int64) {
	if err := r.cache.Incr(ctx, generationKey(eventID)).Err(); err != nil {
		r.log.Warn("Failed to invalidate report cache", zap.Int64("event_id", eventID), zap.Error(err))
	}
}

// cached serves dst from Redis, falling back to load on a miss. Concurrent
// misses for the same key share one load. Cache failures never fail a read.
func (r *CachedReportRepository) cached(ctx context.Context, eventID int64, kind string, dst interface{}, load func() (interface{}, error)) error {
	key, keyErr := r.key(ctx, eventID, kind)
	if keyErr == nil {
		if raw, err := r.cache.Get(ctx, key).Bytes(); err == nil {
			if err := json.Unmarshal(raw, dst); err == nil {
				return nil
			}
		} else if !redis.IsNil(err) {
			r.log.Warn("Report cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	flightKey := key
	if keyErr != nil {
		flightKey = fmt.Sprintf("%s%d:%s", reportKeyPrefix, eventID, kind)
	}

	raw, err, _ := r.group.Do(flightKey, func() (interface{}, error) {
		value, err := load()
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode report: %w", err)
		}
		if keyErr == nil {
			if err := r.cache.Set(ctx, key, data, r.ttl).Err(); err != nil {
				r.log.Warn("Report cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(raw.([]byte), dst)
}

func (r *CachedReportRepository) key(ctx context.Context, eventID int64, kind string) (string, error) {
	gen, err := r.cache.Get(ctx, generationKey(eventID)).Int64()
	if err != nil && !redis.IsNil(err) {
		return "", err
	}
	return fmt.Sprintf("%s%d:v%d:%s", reportKeyPrefix, eventID, gen, kind), nil
}

func generationKey(eventID int64) string {
	return fmt.Sprintf("%s%d%s", reportKeyPrefix, eventID, reportGenerationSuffix)
}
