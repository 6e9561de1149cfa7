// Package retry holds the status-code classification shared by the retry
// middleware.
package retry

import (
	"strconv"
	"time"
)

// ShouldRetry reports whether a response with this status code is worth
// retrying: 429 (the Hudu quota was hit despite client-side limiting) and
// any 5xx. Other 4xx responses are permanent.
func ShouldRetry(statusCode int) bool {
	return statusCode >= 500 || statusCode == 429
}

// ParseRetryAfter reads a Retry-After header value given in seconds. Hudu
// sends the integer form; the HTTP-date form is not handled and yields 0,
// as does an empty or malformed value, letting the caller fall back to
// exponential backoff.
func ParseRetryAfter(retryAfterHeader string) time.Duration {
	if retryAfterHeader == "" {
		return 0
	}

	seconds, err := strconv.Atoi(retryAfterHeader)
	if err == nil {
		return time.Duration(seconds) * time.Second
	}

	return 0
}
