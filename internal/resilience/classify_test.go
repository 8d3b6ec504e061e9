package resilience

import (
	"net"
	"net/http"
	"syscall"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"marked retryable", MarkRetryable(eris.New("census returned status 503"), 503), true},
		{"marked retryable wrapped", eris.Wrap(MarkRetryable(eris.New("portal shed load"), 429), "fetch plants"), true},
		{"plain error", eris.New("plant sheet is empty"), false},
		{"dns timeout", &net.DNSError{Name: "geocoding.geo.census.gov", IsTimeout: true}, true},
		{"connection refused", eris.Wrap(syscall.ECONNREFUSED, "dial portal"), true},
		{"connection reset string", eris.New("read tcp: connection reset by peer"), true},
		{"io timeout string", eris.New("fetch eGRID: i/o timeout"), true},
		{"bad request", eris.New("census returned status 400"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRetry(tt.err))
		})
	}
}

func TestRetryableStatus(t *testing.T) {
	retryable := []int{
		http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
	}
	for _, code := range retryable {
		assert.True(t, RetryableStatus(code), "status %d", code)
	}

	for _, code := range []int{http.StatusOK, http.StatusNotFound, http.StatusBadRequest, http.StatusNotImplemented} {
		assert.False(t, RetryableStatus(code), "status %d", code)
	}
}

func TestMarkRetryableUnwraps(t *testing.T) {
	inner := eris.New("census returned status 502")
	marked := MarkRetryable(inner, 502)

	assert.Equal(t, inner.Error(), marked.Error())
	assert.ErrorIs(t, marked, inner)
}
