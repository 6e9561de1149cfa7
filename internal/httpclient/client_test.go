package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerMiddleware(key, value string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(req *http.Request) (*http.Response, error) {
			req.Header.Add(key, value)
			return next.RoundTrip(req)
		})
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var seen []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Values("X-Order")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(WithMiddleware(
		headerMiddleware("X-Order", "outer"),
		headerMiddleware("X-Order", "middle"),
		headerMiddleware("X-Order", "inner"),
	))

	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	// First middleware is outermost, so it runs first and its header lands first.
	assert.Equal(t, []string{"outer", "middle", "inner"}, seen)
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	client := New()
	assert.Equal(t, 30*time.Second, client.HTTPClient().Timeout)
	assert.Nil(t, client.HTTPClient().Transport)
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	client := New(WithTimeout(5 * time.Second))
	assert.Equal(t, 5*time.Second, client.HTTPClient().Timeout)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{Timeout: time.Second}
	client := New(WithHTTPClient(custom))
	assert.Same(t, custom, client.HTTPClient())

	// nil client keeps the default.
	client = New(WithHTTPClient(nil))
	assert.Equal(t, 30*time.Second, client.HTTPClient().Timeout)
}
