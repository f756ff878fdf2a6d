package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nypass/ticketing-service/internal/models"
	"github.com/redis/go-redis/v9"
)

const passTypeTTL = 10 * time.Minute

// PassTypeCache keeps the small pass-type catalog in redis so the booking
// and gate flows don't hit postgres for reference data on every request.
// A nil *PassTypeCache is a no-op, so redis stays optional.
type PassTypeCache struct {
	client *redis.Client
}

func NewPassTypeCache(addr string) (*PassTypeCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &PassTypeCache{client: client}, nil
}

func (c *PassTypeCache) Get(ctx context.Context, id uint) (*models.PassType, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var pt models.PassType
	if err := json.Unmarshal(data, &pt); err != nil {
		return nil, false
	}
	return &pt, true
}

func (c *PassTypeCache) Set(ctx context.Context, pt *models.PassType) {
	if c == nil {
		return
	}
	data, err := json.Marshal(pt)
	if err != nil {
		return
	}
	c.client.Set(ctx, key(pt.ID), data, passTypeTTL)
}

// Invalidate drops a cached entry after a catalog update.
func (c *PassTypeCache) Invalidate(ctx context.Context, id uint) {
	if c == nil {
		return
	}
	c.client.Del(ctx, key(id))
}

func (c *PassTypeCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func key(id uint) string {
	return fmt.Sprintf("passtype:%d", id)
}
