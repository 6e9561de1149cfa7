package httpclient

import (
	"net/http"
	"time"
)

// Option configures a Client at construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. A nil client is
// ignored and the default (30s timeout) is kept.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.base = client
		}
	}
}

// WithTimeout sets the request timeout on the underlying client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.base.Timeout = timeout
	}
}

// WithTransport sets the base transport. Middleware configured on the same
// client wraps it.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.base.Transport = transport
	}
}

// WithMiddleware appends middleware to the chain. Listing order is
// outermost-first:
//
//	WithMiddleware(A, B, C) yields A(B(C(transport)))
//
// so requests pass A then B then C on the way out and the reverse on the way
// back. Outer concerns (observability) read naturally before inner ones
// (retry, rate limiting, auth).
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, middleware...)
	}
}
