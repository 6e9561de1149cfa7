package hudu

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := &ClientConfig{
		BaseURL: "https://hudu.example.com",
		APIKey:  "key",
	}
	cfg.applyDefaults()

	assert.Equal(t, DefaultMaxCallsPerWindow, cfg.MaxCallsPerWindow)
	assert.Equal(t, DefaultWindow, cfg.Window)
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, DefaultRetryWaitTime, cfg.RetryWaitTime)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultMaxPages, cfg.MaxPages)
	assert.NotNil(t, cfg.Logger)
	assert.NotNil(t, cfg.Metrics)
}

func TestClientConfigCustomValuesKept(t *testing.T) {
	t.Parallel()

	cfg := &ClientConfig{
		BaseURL:           "https://hudu.example.com",
		APIKey:            "key",
		MaxCallsPerWindow: 100,
		Window:            30 * time.Second,
		MaxRetries:        5,
	}
	cfg.applyDefaults()

	assert.Equal(t, 100, cfg.MaxCallsPerWindow)
	assert.Equal(t, 30*time.Second, cfg.Window)
	assert.Equal(t, 5, cfg.MaxRetries)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("HUDU_BASE_URL", "https://hudu.example.com")
	t.Setenv("HUDU_API_KEY", "env-key")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://hudu.example.com", cfg.BaseURL)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestPerMinuteLimiter(t *testing.T) {
	t.Parallel()

	limiter := PerMinuteLimiter(120)
	require.NotNil(t, limiter)

	// The bucket starts full, so a burst passes without blocking.
	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestPageOptionsDefaults(t *testing.T) {
	t.Parallel()

	opts := PageOptions{}.withDefaults(DefaultMaxPages)
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, DefaultPageSize, opts.PageSize)
	assert.Equal(t, DefaultMaxPages, opts.MaxPages)

	opts = PageOptions{Page: 3, PageSize: 50, MaxPages: 2}.withDefaults(DefaultMaxPages)
	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 50, opts.PageSize)
	assert.Equal(t, 2, opts.MaxPages)
}
