package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 5 * time.Second
	// Must stay above limiterTimeout.
	socketTimeout = time.Second
	clientName    = "portal-api"
)

// Config holds the connection settings for the Redis instance backing the
// auth rate limiter.
type Config struct {
	Addr     string
	DB       int
	Password string
	// Timeout bounds dialing and the startup ping. Defaults to 5s.
	Timeout time.Duration
}

// Connect opens a client named portal-api and pings it once. The client is
// closed again when the ping fails.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		Password:     cfg.Password,
		ClientName:   clientName,
		DialTimeout:  timeout,
		ReadTimeout:  socketTimeout,
		WriteTimeout: socketTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: ping: %w", cfg.Addr, err)
	}
	return client, nil
}
