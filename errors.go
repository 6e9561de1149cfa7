package hudu

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// ErrorKind classifies API failures so callers can branch on the cause
// without string matching.
type ErrorKind string

const (
	// KindNotFound indicates the requested resource does not exist (HTTP 404).
	KindNotFound ErrorKind = "not_found"
	// KindAuthenticationFailed indicates the API key was rejected (HTTP 401).
	KindAuthenticationFailed ErrorKind = "authentication_failed"
	// KindRateLimitExceeded indicates the server reported 429 even after the
	// client backed off.
	KindRateLimitExceeded ErrorKind = "rate_limit_exceeded"
	// KindServerError indicates a 5xx response that persisted through retries.
	KindServerError ErrorKind = "server_error"
	// KindNetworkError indicates a transport failure (connection refused,
	// timeout, DNS) with no HTTP response.
	KindNetworkError ErrorKind = "network_error"
	// KindAPIError covers the remaining 4xx responses.
	KindAPIError ErrorKind = "api_error"
)

// APIError is returned by the low-level client for any non-2xx response or
// transport failure. Body holds the raw response body when one was received;
// it never includes the API key.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "hudu: API error"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("hudu: %s: status %d: %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("hudu: %s: %s", e.Kind, e.Message)
}

// ValidationError is returned when a response object is missing a required
// field or carries the wrong primitive type for one.
type ValidationError struct {
	Field    string
	Expected string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "hudu: validation error"
	}
	return fmt.Sprintf("hudu: field %q: expected %s", e.Field, e.Expected)
}

// newAPIError maps a final HTTP response to the typed error taxonomy. The
// caller is expected to have exhausted the retry policy already.
func newAPIError(statusCode int, body []byte) *APIError {
	e := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	switch {
	case statusCode == http.StatusUnauthorized:
		e.Kind = KindAuthenticationFailed
		e.Message = "authentication failed"
	case statusCode == http.StatusNotFound:
		e.Kind = KindNotFound
		e.Message = "resource not found"
	case statusCode == http.StatusTooManyRequests:
		e.Kind = KindRateLimitExceeded
		e.Message = "rate limit exceeded"
	case statusCode >= 500:
		e.Kind = KindServerError
		e.Message = "server error"
	default:
		e.Kind = KindAPIError
		e.Message = "request rejected"
	}

	return e
}

func newNetworkError(err error) error {
	return errors.WithSecondaryError(&APIError{
		Kind:    KindNetworkError,
		Message: err.Error(),
	}, err)
}

// errorKind extracts the ErrorKind from err, or "" if err is not an APIError.
func errorKind(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr.Kind
	}
	return ""
}

// IsNotFound reports whether err represents an HTTP 404 from the API.
func IsNotFound(err error) bool { return errorKind(err) == KindNotFound }

// IsAuthenticationFailed reports whether err represents an HTTP 401 from the API.
func IsAuthenticationFailed(err error) bool { return errorKind(err) == KindAuthenticationFailed }

// IsRateLimitExceeded reports whether err represents an HTTP 429 from the API.
func IsRateLimitExceeded(err error) bool { return errorKind(err) == KindRateLimitExceeded }

// IsServerError reports whether err represents a 5xx response from the API.
func IsServerError(err error) bool { return errorKind(err) == KindServerError }

// IsNetworkError reports whether err represents a transport-level failure.
func IsNetworkError(err error) bool { return errorKind(err) == KindNetworkError }

// IsValidationError reports whether err is a ValidationError, returning the
// typed error when it is.
func IsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) && verr != nil {
		return verr, true
	}
	return nil, false
}
