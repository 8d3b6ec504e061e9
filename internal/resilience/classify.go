// Package resilience guards calls to the federal services this tool depends
// on, chiefly the Census geocoder and the EPA and HIFLD download portals.
// Failures are classified as retryable or permanent, retryable ones are
// retried with capped doubling backoff, and a breaker refuses calls while an
// upstream is down outright.
package resilience

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// retryableError tags an error as safe to retry. status carries the HTTP
// status that produced it, or 0 for non-HTTP failures.
type retryableError struct {
	err    error
	status int
}

func (e *retryableError) Error() string { return e.err.Error() }

func (e *retryableError) Unwrap() error { return e.err }

// MarkRetryable tags err as retryable. Callers that already know a failure
// is transient, such as an HTTP client seeing a 503, mark it so ShouldRetry
// does not have to guess.
func MarkRetryable(err error, status int) error {
	return &retryableError{err: err, status: status}
}

// RetryableStatus reports whether an HTTP status from an upstream service is
// worth retrying. The Census geocoder sheds load with 503s and the ArcGIS
// portal rate-limits with 429s; client errors are permanent.
func RetryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// ShouldRetry reports whether err looks transient: an explicitly marked
// retryable error, a network timeout, a reset or refused connection, or one
// of the failure strings the portals produce under load.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}

	var re *retryableError
	if errors.As(err, &re) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	for _, errno := range []syscall.Errno{
		syscall.ECONNRESET,
		syscall.ECONNREFUSED,
		syscall.ECONNABORTED,
	} {
		if errors.Is(err, errno) {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, hint := range []string{
		"connection reset",
		"i/o timeout",
		"tls handshake timeout",
		"no such host",
		"unexpected eof",
	} {
		if strings.Contains(msg, hint) {
			return true
		}
	}

	return false
}
