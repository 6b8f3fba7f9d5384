package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/planvane/planvane-backend/internal/observability"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

const planViewCacheName = "plan_view"

// PlanViewCache is a best-effort read-through cache for rendered plan views.
// Implementations must never fail a request: a broken cache degrades to a
// database read.
type PlanViewCache interface {
	Get(ctx context.Context, planID uuid.UUID) (*PlanView, bool)
	Set(ctx context.Context, planID uuid.UUID, view *PlanView)
	Invalidate(ctx context.Context, planID uuid.UUID)
}

type redisPlanViewCache struct {
	log    *logger.Logger
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPlanViewCache(baseLog *logger.Logger, client *redis.Client, ttl time.Duration) PlanViewCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisPlanViewCache{
		log:    baseLog.With("cache", "PlanViewCache"),
		client: client,
		ttl:    ttl,
	}
}

func planViewKey(planID uuid.UUID) string {
	return fmt.Sprintf("planvane:plan_view:%s", planID)
}

func (c *redisPlanViewCache) Get(ctx context.Context, planID uuid.UUID) (*PlanView, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, planViewKey(planID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			observability.Current().IncCacheOp(planViewCacheName, "error")
			c.log.Debug("cache get failed", "plan_id", planID, "error", err)
			return nil, false
		}
		observability.Current().IncCacheOp(planViewCacheName, "miss")
		return nil, false
	}
	var view PlanView
	if err := json.Unmarshal(raw, &view); err != nil {
		observability.Current().IncCacheOp(planViewCacheName, "error")
		c.log.Warn("cache entry undecodable, dropping", "plan_id", planID, "error", err)
		c.Invalidate(ctx, planID)
		return nil, false
	}
	observability.Current().IncCacheOp(planViewCacheName, "hit")
	return &view, true
}

func (c *redisPlanViewCache) Set(ctx context.Context, planID uuid.UUID, view *PlanView) {
	if c == nil || c.client == nil || view == nil {
		return
	}
	raw, err := json.Marshal(view)
	if err != nil {
		observability.Current().IncCacheOp(planViewCacheName, "error")
		c.log.Warn("cache encode failed", "plan_id", planID, "error", err)
		return
	}
	if err := c.client.Set(ctx, planViewKey(planID), raw, c.ttl).Err(); err != nil {
		observability.Current().IncCacheOp(planViewCacheName, "error")
		c.log.Debug("cache set failed", "plan_id", planID, "error", err)
		return
	}
	observability.Current().IncCacheOp(planViewCacheName, "set")
}

func (c *redisPlanViewCache) Invalidate(ctx context.Context, planID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, planViewKey(planID)).Err(); err != nil {
		observability.Current().IncCacheOp(planViewCacheName, "error")
		c.log.Debug("cache invalidate failed", "plan_id", planID, "error", err)
		return
	}
	observability.Current().IncCacheOp(planViewCacheName, "invalidate")
}
