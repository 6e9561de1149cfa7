package middleware

import (
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/hudu-community/go-hudu/observability"
)

// Observability returns a middleware that logs and records metrics for HTTP requests.
func Observability(logger observability.Logger, metrics observability.MetricsRecorder) func(http.RoundTripper) http.RoundTripper {
	if logger == nil {
		logger = observability.NoopLogger()
	}
	if metrics == nil {
		metrics = observability.NoopMetricsRecorder()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &observabilityTransport{
			next:    next,
			logger:  logger,
			metrics: metrics,
		}
	}
}

type observabilityTransport struct {
	next    http.RoundTripper
	logger  observability.Logger
	metrics observability.MetricsRecorder
}

func (t *observabilityTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	urlStr := req.URL.String()

	t.logger.Debug("http request started",
		observability.Field{Key: "method", Value: req.Method},
		observability.Field{Key: "url", Value: urlStr},
		observability.Field{Key: "path", Value: req.URL.Path},
	)

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		t.logger.Error("http request failed",
			observability.Field{Key: "method", Value: req.Method},
			observability.Field{Key: "url", Value: urlStr},
			observability.Field{Key: "duration", Value: duration},
			observability.Field{Key: "error", Value: err.Error()},
		)

		t.metrics.RecordError("http_request", "network_error")

		//nolint:wrapcheck // Observability middleware logs the error but passes it through unchanged
		return nil, err
	}

	fields := []observability.Field{
		{Key: "method", Value: req.Method},
		{Key: "url", Value: urlStr},
		{Key: "status", Value: resp.StatusCode},
		{Key: "duration", Value: duration},
	}

	if resp.StatusCode >= http.StatusBadRequest {
		t.logger.Warn("http request completed with error", fields...)
	} else {
		t.logger.Debug("http request completed", fields...)
	}

	t.metrics.RecordHTTPRequest(req.Method, normalizePath(req.URL.Path), resp.StatusCode, duration)

	return resp, nil
}

var (
	// numericIDPattern matches numeric resource IDs in Hudu paths
	// (/companies/42, /companies/42/assets/1337).
	numericIDPattern = regexp.MustCompile(`/\d+(/|$)`)

	// normalizedPathCache caches normalized paths. The Hudu endpoint set is
	// small, so nearly every request after warm-up is a cache hit.
	normalizedPathCache sync.Map
)

// normalizePath replaces numeric ID segments with a placeholder to keep
// metric label cardinality bounded.
//
// Example: /api/v1/companies/42/assets/7 -> /api/v1/companies/:id/assets/:id
func normalizePath(path string) string {
	if cached, ok := normalizedPathCache.Load(path); ok {
		//nolint:forcetypeassert // Cache only stores strings
		return cached.(string)
	}

	normalized := numericIDPattern.ReplaceAllStringFunc(path, func(match string) string {
		if match[len(match)-1] == '/' {
			return "/:id/"
		}
		return "/:id"
	})

	normalizedPathCache.Store(path, normalized)

	return normalized
}
