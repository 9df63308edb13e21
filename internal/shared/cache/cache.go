package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis abre o client usado pelo cache do snapshot de eventos
// e valida com ping antes de devolver
func ConnectRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
