package service

import (
	"context"
	"encoding/json"
	"time"

	platformredis "benesurvey/internal/platform/redis"
	"benesurvey/internal/survey/models"
)

// ProgressCache is a read-through cache for computed progress. Lookups are
// best effort: a miss or a cache failure falls back to pure computation.
type ProgressCache interface {
	Get(ctx context.Context, surveyID string) (*models.ProgressResult, bool)
	Set(ctx context.Context, surveyID string, result models.ProgressResult)
	Invalidate(ctx context.Context, surveyID string)
}

// RedisProgressCache stores progress results as JSON values with a short TTL.
// Stale entries are bounded by the TTL plus explicit invalidation on every
// document write.
type RedisProgressCache struct {
	client *platformredis.Client
	ttl    time.Duration
}

func NewRedisProgressCache(client *platformredis.Client, ttl time.Duration) *RedisProgressCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisProgressCache{client: client, ttl: ttl}
}

func progressKey(surveyID string) string {
	return "benesurvey:progress:" + surveyID
}

func (c *RedisProgressCache) Get(ctx context.Context, surveyID string) (*models.ProgressResult, bool) {
	raw, err := c.client.Get(ctx, progressKey(surveyID)).Bytes()
	if err != nil {
		return nil, false
	}
	var result models.ProgressResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (c *RedisProgressCache) Set(ctx context.Context, surveyID string, result models.ProgressResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	c.client.Set(ctx, progressKey(surveyID), raw, c.ttl)
}

func (c *RedisProgressCache) Invalidate(ctx context.Context, surveyID string) {
	c.client.Del(ctx, progressKey(surveyID))
}
