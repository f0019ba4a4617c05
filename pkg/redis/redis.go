package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Omar96MJ/sanad-sub001/config"
)

// New connects and pings. Zero-valued pool and timeout settings fall back to
// the go-redis defaults via defaulted().
func New(cfg config.RedisConfig) (*goredis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}
	cfg = defaulted(cfg)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func defaulted(c config.RedisConfig) config.RedisConfig {
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.MinIdleConns <= 0 {
		c.MinIdleConns = 2
	}
	if c.DialTimeoutSeconds <= 0 {
		c.DialTimeoutSeconds = 5
	}
	if c.ReadTimeoutSeconds <= 0 {
		c.ReadTimeoutSeconds = 3
	}
	if c.WriteTimeoutSeconds <= 0 {
		c.WriteTimeoutSeconds = 3
	}
	return c
}
