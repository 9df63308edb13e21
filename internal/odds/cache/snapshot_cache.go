package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/saidozsoy1/sports-betting-app/internal/odds"
)

const keySnapshot = "odds:snapshot"

// Cache guarda o último snapshot filtrado de eventos no Redis, permitindo
// que uma instância reiniciada sirva eventos antes do primeiro fetch
type Cache struct {
	R   *redis.Client
	TTL time.Duration
}

func New(r *redis.Client, ttl time.Duration) *Cache {
	return &Cache{R: r, TTL: ttl}
}

func (c *Cache) Set(ctx context.Context, evs []odds.Event) error {
	b, _ := json.Marshal(evs)
	return c.R.Set(ctx, keySnapshot, b, c.TTL).Err()
}

func (c *Cache) Get(ctx context.Context) ([]odds.Event, bool, error) {
	b, err := c.R.Get(ctx, keySnapshot).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var evs []odds.Event
	if err := json.Unmarshal(b, &evs); err != nil {
		return nil, false, err
	}
	return evs, true, nil
}
