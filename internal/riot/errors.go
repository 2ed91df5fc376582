package riot

import (
	"errors"
	"fmt"
)

// ErrorKind classifies upstream failures so callers can pattern-match
// recoverable vs. fatal outcomes.
type ErrorKind int

const (
	// KindTransport covers network failures and unexpected status codes.
	KindTransport ErrorKind = iota
	// KindNotFound is skippable at the item level.
	KindNotFound
	// KindAuthInvalid is fatal and aborts the enclosing operation.
	KindAuthInvalid
	// KindRateLimited is signaled distinctly; detail fetches retry it with
	// backoff before giving up.
	KindRateLimited
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAuthInvalid:
		return "auth_invalid"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "transport"
	}
}

// APIError is any classified failure from the upstream match API.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	URL        string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("riot api %s: %s: %v", e.Kind, e.URL, e.Err)
	}
	return fmt.Sprintf("riot api %s (%d): %s", e.Kind, e.StatusCode, e.URL)
}

func (e *APIError) Unwrap() error { return e.Err }

func classify(status int, url string) *APIError {
	switch status {
	case 404:
		return &APIError{Kind: KindNotFound, StatusCode: status, URL: url}
	case 401, 403:
		return &APIError{Kind: KindAuthInvalid, StatusCode: status, URL: url}
	case 429:
		return &APIError{Kind: KindRateLimited, StatusCode: status, URL: url}
	default:
		return &APIError{Kind: KindTransport, StatusCode: status, URL: url}
	}
}

func isKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func IsNotFound(err error) bool    { return isKind(err, KindNotFound) }
func IsAuthInvalid(err error) bool { return isKind(err, KindAuthInvalid) }
func IsRateLimited(err error) bool { return isKind(err, KindRateLimited) }
