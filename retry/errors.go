package retry

import (
	"context"
	"errors"
	"net"
	"net/url"
	"syscall"

	"github.com/spetersoncode/statekit"
)

// statusCoder is implemented by HTTP client errors that carry a status code.
type statusCoder interface {
	StatusCode() int
}

// IsTransient determines if an error is transient and should be retried.
// Errors implementing statekit.CategorizedError decide for themselves.
// Otherwise it falls back to heuristics:
// - Rate limits (HTTP 429)
// - Server errors (HTTP 5xx)
// - Network timeouts
// - Connection resets and refusals
// - Temporary DNS failures
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var ce statekit.CategorizedError
	if errors.As(err, &ce) {
		return ce.Retryable()
	}

	var sc statusCoder
	if errors.As(err, &sc) && isTransientStatusCode(sc.StatusCode()) {
		return true
	}

	return isTransientNetworkError(err)
}

// isTransientStatusCode checks if an HTTP status code indicates a transient error.
func isTransientStatusCode(code int) bool {
	return code == 429 || (code >= 500 && code < 600)
}

// isTransientNetworkError checks for network-level transient errors.
func isTransientNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		if urlErr.Err != nil && isTransientNetworkError(urlErr.Err) {
			return true
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET, syscall.ECONNREFUSED, syscall.ETIMEDOUT:
			return true
		}
	}

	return false
}
