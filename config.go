package hudu

import (
	"context"
	"net/http"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/cockroachdb/errors"

	"github.com/hudu-community/go-hudu/internal/ratelimit"
	"github.com/hudu-community/go-hudu/observability"
)

const (
	// DefaultMaxCallsPerWindow is the documented Hudu API quota.
	DefaultMaxCallsPerWindow = 300
	// DefaultWindow is the quota window.
	DefaultWindow = time.Minute

	// DefaultMaxRetries is the default number of retries for failed requests.
	DefaultMaxRetries = 3
	// DefaultRetryWaitTime is the default wait time between retries.
	DefaultRetryWaitTime = 1 * time.Second
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPageSize matches the API default page size.
	DefaultPageSize = 25
	// DefaultMaxPages caps automatic pagination so a malformed server that
	// keeps returning full pages cannot loop the client forever.
	DefaultMaxPages = 1000
)

// RateLimiter blocks until a call may proceed under a rate-limiting policy.
// Both the default sliding-window limiter and golang.org/x/time/rate.Limiter
// satisfy it. Pass the same RateLimiter to several clients to share one
// quota across them.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// PerMinuteLimiter returns a token-bucket RateLimiter replenishing at
// requestsPerMinute/60 tokens per second with burst capacity equal to
// requestsPerMinute. Unlike the default sliding window it can briefly exceed
// the per-window quota after an idle period; pass it via ClientConfig.Limiter
// when smoother pacing matters more than the hard quota.
//
//nolint:ireturn // Factory function returns interface for ClientConfig.Limiter
func PerMinuteLimiter(requestsPerMinute int) RateLimiter {
	return ratelimit.PerMinute(requestsPerMinute)
}

// ClientConfig holds configuration for the Hudu API client.
type ClientConfig struct {
	// BaseURL is the URL of the Hudu instance, e.g. https://hudu.example.com
	BaseURL string

	// APIKey is the Hudu API key sent in the x-api-key header
	APIKey string

	// HTTPClient is the HTTP client to use (optional)
	HTTPClient *http.Client

	// MaxCallsPerWindow sets the rate limit quota (defaults to 300)
	MaxCallsPerWindow int

	// Window sets the rate limit window (defaults to 60s)
	Window time.Duration

	// Limiter overrides the default sliding-window limiter. When set,
	// MaxCallsPerWindow and Window are ignored.
	Limiter RateLimiter

	// MaxRetries sets maximum number of retries for failed requests
	MaxRetries int

	// RetryWaitTime sets the initial wait time between retries
	RetryWaitTime time.Duration

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// MaxPages caps automatic pagination (defaults to 1000)
	MaxPages int

	// InsecureTLS skips certificate verification. Only for self-hosted
	// development instances with self-signed certificates.
	InsecureTLS bool

	// Logger for observability (optional, uses noop logger if nil)
	Logger observability.Logger

	// Metrics recorder for observability (optional, uses noop recorder if nil)
	Metrics observability.MetricsRecorder
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.MaxCallsPerWindow == 0 {
		cfg.MaxCallsPerWindow = DefaultMaxCallsPerWindow
	}
	if cfg.Window == 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryWaitTime == 0 {
		cfg.RetryWaitTime = DefaultRetryWaitTime
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxPages == 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.Logger == nil {
		cfg.Logger = observability.NoopLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetricsRecorder()
	}
}

func (cfg *ClientConfig) validate() error {
	if cfg.BaseURL == "" {
		return errors.New("base URL is required (set HUDU_BASE_URL or pass BaseURL)")
	}
	if cfg.APIKey == "" {
		return errors.New("API key is required (set HUDU_API_KEY or pass APIKey)")
	}
	return nil
}

// envConfig maps the environment variables the original tooling reads.
type envConfig struct {
	BaseURL string `env:"HUDU_BASE_URL"`
	APIKey  string `env:"HUDU_API_KEY"`
}

// ConfigFromEnv builds a ClientConfig from HUDU_BASE_URL and HUDU_API_KEY.
// Missing variables are reported at client construction, not here.
func ConfigFromEnv() (*ClientConfig, error) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	return &ClientConfig{
		BaseURL: ec.BaseURL,
		APIKey:  ec.APIKey,
	}, nil
}
