package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const OfficeCacheKeyPrefix = "attendance:office:"

func OfficeCacheKey(companyID string) string {
	return OfficeCacheKeyPrefix + companyID
}

type officeReader interface {
	FindActiveOffice(ctx context.Context, companyID string) (*OfficeLocation, error)
}

// OfficeCache fronts the active office lookup with redis. Only hits are
// cached so a freshly configured office is visible without invalidation.
type OfficeCache struct {
	repo   officeReader
	rdb    *redis.Client
	sf     singleflight.Group
	ttl    time.Duration
	logger *zap.Logger
}

func NewOfficeCache(repo officeReader, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) *OfficeCache {
	l := zap.L().Named("attendance.office_cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.office_cache")
	}
	return &OfficeCache{repo: repo, rdb: rdb, ttl: ttl, logger: l}
}

func (c *OfficeCache) ActiveOffice(ctx context.Context, companyID string) (*OfficeLocation, error) {
	key := OfficeCacheKey(companyID)

	if c.rdb != nil {
		cached, err := c.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var office OfficeLocation
			if jsonErr := json.Unmarshal(cached, &office); jsonErr == nil {
				return &office, nil
			}
			c.logger.Warn("discarding malformed office cache entry", zap.String("key", key))
		case !errors.Is(err, redis.Nil):
			c.logger.Warn("office cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		office, err := c.repo.FindActiveOffice(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if office != nil && c.rdb != nil {
			if data, err := json.Marshal(office); err == nil {
				if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
					c.logger.Warn("office cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return office, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*OfficeLocation), nil
}

func (c *OfficeCache) Invalidate(ctx context.Context, companyID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, OfficeCacheKey(companyID)).Err()
}
