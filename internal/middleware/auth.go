// Package middleware implements the RoundTripper layers every Hudu request
// passes through: observability, retry, rate limiting, auth, TLS.
package middleware

import (
	"maps"
	"net/http"
)

// Auth returns a middleware that stamps the Hudu API key onto every
// request. Hudu expects the key in "x-api-key"; the header name is a
// parameter so the middleware survives an API rename.
func Auth(headerName, headerValue string) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return &authTransport{
			next:        next,
			headerName:  headerName,
			headerValue: headerValue,
		}
	}
}

type authTransport struct {
	next        http.RoundTripper
	headerName  string
	headerValue string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	req = cloneRequest(req)

	req.Header.Set(t.headerName, t.headerValue)
	req.Header.Set("Accept", "application/json")

	//nolint:wrapcheck // Middleware passes errors through unchanged
	return t.next.RoundTrip(req)
}

// cloneRequest shallow-copies the request with its own header map, which is
// all the auth layer touches.
func cloneRequest(req *http.Request) *http.Request {
	r := new(http.Request)
	*r = *req
	r.Header = make(http.Header, len(req.Header))
	maps.Copy(r.Header, req.Header)
	return r
}
