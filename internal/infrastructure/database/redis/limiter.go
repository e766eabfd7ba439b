package redis

import (
	"context"
	"time"

	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

// RateLimiter enforces one message per session within a fixed window using
// SET NX with expiry: the first sender in a window claims the key, later
// sends within the window are rejected.
type RateLimiter struct {
	client *Client
	logger logging.Logger
	prefix string
	window time.Duration
}

// NewRateLimiter builds a RateLimiter with the given window.
func NewRateLimiter(client *Client, log logging.Logger, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Second
	}
	return &RateLimiter{
		client: client,
		logger: log.Named("ratelimit"),
		prefix: "afya:ratelimit:",
		window: window,
	}
}

// Allow reports whether the session may send a message now. Redis being
// unreachable fails open: blocking all traffic on a cache outage is worse
// than briefly losing the limit.
func (l *RateLimiter) Allow(ctx context.Context, sessionID string) bool {
	ok, err := l.client.Underlying().
		SetNX(ctx, l.prefix+sessionID, 1, l.window).Result()
	if err != nil {
		l.logger.Warn("rate limiter unavailable, allowing request", logging.Err(err))
		return true
	}
	if !ok {
		l.logger.Debug("rate limit exceeded", logging.String("session_id", sessionID))
	}
	return ok
}
