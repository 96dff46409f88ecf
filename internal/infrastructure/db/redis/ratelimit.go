package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript increments the counter for KEYS[1], starts its window on
// the first hit and reports whether the count is still within ARGV[2].
const fixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const limiterTimeout = 250 * time.Millisecond

// RateLimiter is a fixed-window counter shared by every API instance.
// Key format: ratelimit:<key>
type RateLimiter struct {
	client redis.Scripter
	script *redis.Script
	prefix string
}

// NewRateLimiter creates a RateLimiter wrapping the given Redis client.
func NewRateLimiter(client redis.Scripter) *RateLimiter {
	return &RateLimiter{
		client: client,
		script: redis.NewScript(fixedWindowScript),
		prefix: "ratelimit",
	}
}

// Allow reports whether another request under key fits into the current
// window. A non-positive limit or window disables limiting.
func (l *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 || window <= 0 || key == "" {
		return true, nil
	}

	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(ctx, limiterTimeout)
	defer cancel()

	allowed, err := l.script.Run(ctx, l.client, []string{l.key(key)}, ttl, limit).Int64()
	if err != nil {
		return true, fmt.Errorf("rate limit: %w", err)
	}
	return allowed == 1, nil
}

func (l *RateLimiter) key(k string) string {
	return l.prefix + ":" + k
}
