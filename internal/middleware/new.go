package middleware

import (
	"admin-datagrid/pkg/log"
)

// Middleware holds the gin middlewares shared by every route group.
type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

// Config configures New.
type Config struct {
	// RateLimitPerMin is the request budget per client IP. Zero disables limiting.
	RateLimitPerMin int
}

func New(l log.Logger, cfg Config) Middleware {
	mw := Middleware{l: l}
	if cfg.RateLimitPerMin > 0 {
		mw.limiter = newRateLimiter(cfg.RateLimitPerMin)
	}
	return mw
}
