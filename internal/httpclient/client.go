// Package httpclient wraps *http.Client with a RoundTripper middleware chain.
package httpclient

import (
	"net/http"
	"time"
)

// Client is an http.Client whose transport is assembled from middleware at
// construction time. All Hudu requests flow through one of these.
type Client struct {
	base       *http.Client
	middleware []Middleware
}

// Middleware wraps an http.RoundTripper to add behavior around a request.
type Middleware func(http.RoundTripper) http.RoundTripper

// New builds a client from the given options. The middleware chain is fixed
// once New returns; the first middleware passed is the outermost layer.
func New(opts ...Option) *Client {
	c := &Client{
		base: &http.Client{
			Timeout: 30 * time.Second,
		},
		middleware: []Middleware{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if len(c.middleware) > 0 {
		transport := c.base.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}

		// Wrap innermost-first so the first middleware ends up outermost.
		for i := len(c.middleware) - 1; i >= 0; i-- {
			transport = c.middleware[i](transport)
		}

		c.base.Transport = transport
	}

	return c
}

// Do sends the request through the middleware chain.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.base.Do(req)
}

// HTTPClient exposes the underlying http.Client for code that expects one
// directly.
func (c *Client) HTTPClient() *http.Client {
	return c.base
}
