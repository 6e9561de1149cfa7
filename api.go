package hudu

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/hudu-community/go-hudu/internal/httpclient"
	"github.com/hudu-community/go-hudu/internal/middleware"
	"github.com/hudu-community/go-hudu/internal/ratelimit"
)

// apiPrefix is prepended to every resource path.
const apiPrefix = "/api/v1/"

// API is the low-level Hudu client. It issues authenticated, rate-limited
// requests and returns the raw JSON body, surfacing any non-2xx response as
// a typed *APIError. Most callers want Client instead, which adds model
// parsing and Result wrapping on top.
type API struct {
	baseURL  string
	http     *httpclient.Client
	maxPages int
}

// NewAPI creates a low-level client. The middleware chain is, outermost
// first: observability, retry, rate limit, auth. Rate limiting sits inside
// retry so that every attempt, including retries, consumes quota.
func NewAPI(cfg *ClientConfig) (*API, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	limiter := cfg.Limiter
	if limiter == nil {
		sw, err := ratelimit.NewSlidingWindow(cfg.MaxCallsPerWindow, cfg.Window)
		if err != nil {
			return nil, errors.Wrap(err, "invalid rate limit configuration")
		}
		limiter = sw
	}

	mw := []httpclient.Middleware{
		middleware.Observability(cfg.Logger, cfg.Metrics),
		middleware.Retry(middleware.RetryConfig{
			MaxRetries:  cfg.MaxRetries,
			InitialWait: cfg.RetryWaitTime,
			Logger:      cfg.Logger,
			Metrics:     cfg.Metrics,
		}),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: limiter,
			Logger:  cfg.Logger,
			Metrics: cfg.Metrics,
		}),
		middleware.Auth("x-api-key", cfg.APIKey),
	}
	if cfg.InsecureTLS {
		mw = append(mw, middleware.TLSConfig(middleware.InsecureSkipVerify()))
	}

	opts := []httpclient.Option{
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithMiddleware(mw...),
	}
	if cfg.HTTPClient != nil {
		opts = append([]httpclient.Option{httpclient.WithHTTPClient(cfg.HTTPClient)}, opts...)
	}

	return &API{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		http:     httpclient.New(opts...),
		maxPages: cfg.MaxPages,
	}, nil
}

// Do issues a request against a resource path relative to /api/v1/ and
// returns the raw response body. Non-2xx responses and transport failures
// come back as typed errors; see the ErrorKind taxonomy.
func (a *API) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	u := a.baseURL + apiPrefix + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// Get issues a GET against a resource path.
func (a *API) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return a.Do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST with a JSON body.
func (a *API) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return a.Do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT with a JSON body.
func (a *API) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return a.Do(ctx, http.MethodPut, path, nil, body)
}

// Delete issues a DELETE against a resource path.
func (a *API) Delete(ctx context.Context, path string) error {
	_, err := a.Do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// PageOptions controls automatic pagination.
type PageOptions struct {
	// Page is the first page to fetch (defaults to 1).
	Page int
	// PageSize is the page_size query value (defaults to 25). A page
	// shorter than PageSize marks the end of the collection.
	PageSize int
	// MaxPages overrides the client-wide pagination cap when positive.
	MaxPages int
}

func (o PageOptions) withDefaults(clientMax int) PageOptions {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.MaxPages <= 0 {
		o.MaxPages = clientMax
	}
	return o
}

// GetPaged fetches successive pages of a list endpoint and concatenates the
// per-page item arrays in order. envelopeKey names the array inside the
// response envelope ({"companies": [...]}); a bare top-level array is
// accepted too, since the API is inconsistent across endpoints. Fetching
// stops on an empty or short page, or when the page cap is reached.
func (a *API) GetPaged(ctx context.Context, path, envelopeKey string, query url.Values, opts PageOptions) ([]json.RawMessage, error) {
	opts = opts.withDefaults(a.maxPages)

	q := url.Values{}
	for k, vals := range query {
		q[k] = vals
	}
	q.Set("page_size", strconv.Itoa(opts.PageSize))

	var all []json.RawMessage
	for page, fetched := opts.Page, 0; fetched < opts.MaxPages; page, fetched = page+1, fetched+1 {
		q.Set("page", strconv.Itoa(page))

		body, err := a.Get(ctx, path, q)
		if err != nil {
			return nil, err
		}

		items, err := extractItems(body, envelopeKey)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if len(items) < opts.PageSize {
			break
		}
	}

	return all, nil
}

// extractItems pulls the item array out of a list response body, which is
// either a bare array or an envelope object keyed by the resource name.
func extractItems(body json.RawMessage, envelopeKey string) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, errors.Wrap(err, "malformed list response")
		}
		return items, nil
	}

	obj, err := parseRawObject(trimmed)
	if err != nil {
		return nil, errors.Wrap(err, "malformed list response")
	}

	raw, ok := obj[envelopeKey]
	if !ok || isNull(raw) {
		return nil, &ValidationError{Field: envelopeKey, Expected: "array"}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ValidationError{Field: envelopeKey, Expected: "array"}
	}
	return items, nil
}

// unwrapEnvelope extracts a single entity from an envelope object
// ({"company": {...}}). Bodies that are not enveloped pass through
// unchanged.
func unwrapEnvelope(body json.RawMessage, key string) json.RawMessage {
	obj, err := parseRawObject(body)
	if err != nil {
		return body
	}
	if inner, ok := obj[key]; ok && !isNull(inner) {
		return inner
	}
	return body
}
