package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/motorfleet/cars-backend/internal/pkg/logger"
	"github.com/motorfleet/cars-backend/internal/types"
)

// OwnerCache is a read-through cache in front of the owner batch lookup.
// A nil *OwnerCache is valid and disables caching; cache failures are treated
// as misses so the read path never fails because of Redis.
type OwnerCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

func NewOwnerCache(rdb *redis.Client, ttl time.Duration, baseLog *logger.Logger) *OwnerCache {
	cacheLog := baseLog.With("cache", "OwnerCache")
	return &OwnerCache{rdb: rdb, ttl: ttl, log: cacheLog}
}

func ownerKey(id primitive.ObjectID) string {
	return "owner:" + id.Hex()
}

func (c *OwnerCache) Get(ctx context.Context, id primitive.ObjectID) (*types.Owner, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, ownerKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("Cache get failed", "id", id.Hex(), "error", err)
		}
		return nil, false
	}
	var owner types.Owner
	if err := json.Unmarshal(raw, &owner); err != nil {
		c.log.Debug("Cache entry corrupt, treating as miss", "id", id.Hex(), "error", err)
		return nil, false
	}
	return &owner, true
}

func (c *OwnerCache) Set(ctx context.Context, owner *types.Owner) {
	if c == nil || c.rdb == nil || owner == nil {
		return
	}
	raw, err := json.Marshal(owner)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, ownerKey(owner.ID), raw, c.ttl).Err(); err != nil {
		c.log.Debug("Cache set failed", "id", owner.ID.Hex(), "error", err)
	}
}

// Invalidate drops cached entries after owner mutations so a deleted owner
// cannot keep passing existence checks from cache.
func (c *OwnerCache) Invalidate(ctx context.Context, ids ...primitive.ObjectID) {
	if c == nil || c.rdb == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, ownerKey(id))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Debug("Cache invalidate failed", "keys", len(keys), "error", err)
	}
}
