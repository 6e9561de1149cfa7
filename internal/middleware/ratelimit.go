package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/hudu-community/go-hudu/observability"
)

// Waiter blocks until a call may proceed under a rate-limiting policy.
// Both ratelimit.SlidingWindow and golang.org/x/time/rate.Limiter satisfy it.
type Waiter interface {
	Wait(ctx context.Context) error
}

// RateLimitConfig configures the rate limit middleware.
type RateLimitConfig struct {
	Limiter Waiter // nil disables rate limiting
	Logger  observability.Logger
	Metrics observability.MetricsRecorder
}

// RateLimit returns a middleware that gates every outgoing request behind
// the configured limiter. The middleware sits inside the retry layer, so
// retried attempts consume quota like first attempts do.
func RateLimit(cfg RateLimitConfig) func(http.RoundTripper) http.RoundTripper {
	if cfg.Logger == nil {
		cfg.Logger = observability.NoopLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetricsRecorder()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &rateLimitTransport{
			next:    next,
			limiter: cfg.Limiter,
			logger:  cfg.Logger,
			metrics: cfg.Metrics,
		}
	}
}

type rateLimitTransport struct {
	next    http.RoundTripper
	limiter Waiter
	logger  observability.Logger
	metrics observability.MetricsRecorder
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.limiter == nil {
		return t.next.RoundTrip(req)
	}

	start := time.Now()
	if err := t.limiter.Wait(req.Context()); err != nil {
		//nolint:wrapcheck // Limiter errors already carry context
		return nil, err
	}

	if waited := time.Since(start); waited > time.Millisecond {
		t.logger.Debug("rate limit delay",
			observability.Field{Key: "delay", Value: waited},
			observability.Field{Key: "path", Value: req.URL.Path},
		)
		t.metrics.RecordRateLimit(req.URL.Path, waited)
	}

	return t.next.RoundTrip(req)
}
