package infra_redis_init

import (
	"log"
	"net"
	"time"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/moviematch/internal/config"
)

// The page cache is an optimisation: slow redis must not stall TMDB calls.
const (
	dialTimeout = 3 * time.Second
	ioTimeout   = 500 * time.Millisecond
)

func MustEstablishConn(cfg config.RedisCache) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           0,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	})

	if err := client.Ping().Err(); err != nil {
		log.Fatalf("redis ping %s failed: %v", net.JoinHostPort(cfg.Host, cfg.Port), err)
	}

	return client
}
