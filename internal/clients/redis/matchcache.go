package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/staffing-graph-backend/internal/domain"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
)

// MatchCache keeps computed match responses keyed by (rfp id, threshold).
// Entries expire on their own and are dropped eagerly when the RFP changes
// (save, conversion). Stale entries are acceptable: the output is advisory.
type MatchCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewMatchCacheFromEnv returns nil without error when REDIS_ADDR is unset;
// callers treat a nil cache as a no-op.
func NewMatchCacheFromEnv(log *logger.Logger, ttl time.Duration) (*MatchCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	if ttl <= 0 {
		ttl = time.Minute
	}
	return &MatchCache{
		log: log.With("client", "MatchCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func matchKey(rfpID string, months int) string {
	return fmt.Sprintf("match:%s:%d", rfpID, months)
}

func (c *MatchCache) Get(ctx context.Context, rfpID string, months int) (*domain.MatchResponse, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, matchKey(rfpID, months)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("cache get failed", "rfp_id", rfpID, "error", err)
		}
		return nil, false
	}
	var resp domain.MatchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.log.Warn("cache entry unmarshal failed, dropping", "rfp_id", rfpID, "error", err)
		_ = c.rdb.Del(ctx, matchKey(rfpID, months)).Err()
		return nil, false
	}
	return &resp, true
}

func (c *MatchCache) Set(ctx context.Context, rfpID string, months int, resp *domain.MatchResponse) {
	if c == nil || resp == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, matchKey(rfpID, months), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "rfp_id", rfpID, "error", err)
	}
}

// Invalidate removes every cached threshold variant for one RFP.
func (c *MatchCache) Invalidate(ctx context.Context, rfpID string) {
	if c == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, fmt.Sprintf("match:%s:*", rfpID), 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("cache invalidate failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("cache scan failed", "rfp_id", rfpID, "error", err)
	}
}

func (c *MatchCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
