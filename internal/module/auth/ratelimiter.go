package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles login attempts per account using a Redis
// sliding window. A nil limiter allows everything, so the server can
// run without Redis in development.
type LoginLimiter struct {
	redis  redis.UniversalClient
	limit  int64
	window time.Duration
}

// NewLoginLimiter creates a login rate limiter.
func NewLoginLimiter(client redis.UniversalClient, limit int) *LoginLimiter {
	if client == nil || limit <= 0 {
		return nil
	}
	return &LoginLimiter{
		redis:  client,
		limit:  int64(limit),
		window: time.Minute,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed   bool  `json:"allowed"`
	Remaining int64 `json:"remaining"`
	ResetAt   int64 `json:"reset_at"`
	Limit     int64 `json:"limit"`
}

var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local window_start = tonumber(ARGV[1])
	local window_end = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local expiry = tonumber(ARGV[4])

	-- Remove old entries
	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local current = redis.call('ZCARD', key)
	if current + 1 > limit then
		return {0, limit - current}
	end

	redis.call('ZADD', key, window_end, window_end)
	redis.call('PEXPIRE', key, expiry)

	return {1, limit - current - 1}
`)

// Allow records a login attempt for the account and reports whether it
// is within the limit.
func (l *LoginLimiter) Allow(ctx context.Context, email string) (*LimitResult, error) {
	if l == nil {
		return &LimitResult{Allowed: true}, nil
	}

	now := time.Now()
	key := fmt.Sprintf("ratelimit:login:%s", strings.ToLower(email))

	result, err := slidingWindowScript.Run(ctx, l.redis, []string{key},
		now.Add(-l.window).UnixNano(),
		now.UnixNano(),
		l.limit,
		int64(l.window.Milliseconds())+60000, // Add buffer for cleanup
	).Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	allowed, _ := strconv.ParseInt(fmt.Sprint(result[0]), 10, 64)
	remaining, _ := strconv.ParseInt(fmt.Sprint(result[1]), 10, 64)
	if remaining < 0 {
		remaining = 0
	}

	return &LimitResult{
		Allowed:   allowed == 1,
		Remaining: remaining,
		ResetAt:   now.Add(l.window).Unix(),
		Limit:     l.limit,
	}, nil
}

// Reset clears the attempt counter for an account.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if l == nil {
		return nil
	}
	key := fmt.Sprintf("ratelimit:login:%s", strings.ToLower(email))
	return l.redis.Del(ctx, key).Err()
}
