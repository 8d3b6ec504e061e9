package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gridsight/siting-cli/internal/resilience"
)

// Client downloads datasets over HTTP. Requests are paced per host, 429
// responses shrink that host's budget, and transient failures are retried
// with backoff.
type Client struct {
	hc    *http.Client
	agent string
	retry resilience.Backoff
	rates map[string]rate.Limit

	mu    sync.Mutex
	hosts map[string]*hostLimiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithUserAgent overrides the User-Agent header. The federal portals ask
// bulk consumers to identify themselves.
func WithUserAgent(agent string) ClientOption {
	return func(c *Client) { c.agent = agent }
}

// WithTimeout bounds each request. The HIFLD archive runs to hundreds of
// megabytes, so shapefile imports need a far larger budget than the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.hc.Timeout = d }
}

// WithRetry overrides the retry policy.
func WithRetry(b resilience.Backoff) ClientOption {
	return func(c *Client) { c.retry = b }
}

// WithHostRate sets the request budget for one host, in requests per second.
func WithHostRate(host string, perSec float64) ClientOption {
	return func(c *Client) { c.rates[host] = rate.Limit(perSec) }
}

// NewClient creates a dataset download client with the default host budgets.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		hc: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				MaxConnsPerHost:     20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		agent: "siting-cli/1.0",
		retry: resilience.DefaultBackoff(),
		rates: defaultHostRates(),
		hosts: make(map[string]*hostLimiter),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the URL and returns the body. 429 and 5xx responses and
// network-level failures are retried; any other non-200 status is an error.
func (c *Client) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, eris.Errorf("fetcher: %s returned status %d", rawURL, resp.StatusCode)
	}
	return resp.Body, nil
}

// FetchFile downloads the URL to path, returning bytes written.
func (c *Client) FetchFile(ctx context.Context, rawURL, path string) (int64, error) {
	body, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer body.Close() //nolint:errcheck

	f, err := os.Create(path)
	if err != nil {
		return 0, eris.Wrapf(err, "fetcher: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	n, err := io.Copy(f, body)
	if err != nil {
		return n, eris.Wrapf(err, "fetcher: write %s", path)
	}
	return n, nil
}

// get runs the rate-limited, retried round trip. Responses below 500 other
// than 429 are returned to the caller as-is.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	host := hostOf(rawURL)
	lim := c.limiter(host)

	retry := c.retry
	retry.Notify = func(attempt int, err error) {
		zap.L().Warn("fetcher: retrying download",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}

	return resilience.RunVal(ctx, retry, func(ctx context.Context) (*http.Response, error) {
		if err := lim.wait(ctx); err != nil {
			return nil, eris.Wrap(err, "fetcher: rate limit")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: build request for %s", rawURL)
		}
		req.Header.Set("User-Agent", c.agent)

		resp, err := c.hc.Do(req)
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: get %s", rawURL)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			_ = resp.Body.Close()
			lim.throttle()
			return nil, resilience.MarkRetryable(
				eris.Errorf("fetcher: %s rate limited the request", host), resp.StatusCode)
		}
		if resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			return nil, resilience.MarkRetryable(
				eris.Errorf("fetcher: %s returned status %d", rawURL, resp.StatusCode), resp.StatusCode)
		}

		lim.relax()
		return resp, nil
	})
}

// limiter returns the pacer for host, creating it from the configured budget
// on first use.
func (c *Client) limiter(host string) *hostLimiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lim, ok := c.hosts[host]; ok {
		return lim
	}
	budget, ok := c.rates[host]
	if !ok {
		budget = fallbackRate
	}
	lim := newHostLimiter(budget)
	c.hosts[host] = lim
	return lim
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// hostLimiter paces requests to a single host. A 429 halves the rate, down
// to a quarter of the budget; sustained success restores it, up to twice the
// budget.
type hostLimiter struct {
	mu   sync.Mutex
	lim  *rate.Limiter
	base rate.Limit
	cur  rate.Limit
}

func newHostLimiter(budget rate.Limit) *hostLimiter {
	return &hostLimiter{
		lim:  rate.NewLimiter(budget, int(budget)+1),
		base: budget,
		cur:  budget,
	}
}

func (h *hostLimiter) wait(ctx context.Context) error {
	return h.lim.Wait(ctx)
}

func (h *hostLimiter) throttle() {
	h.mu.Lock()
	defer h.mu.Unlock()
	next := h.cur / 2
	if next < h.base/4 {
		next = h.base / 4
	}
	h.cur = next
	h.lim.SetLimit(next)
	zap.L().Warn("fetcher: host rate limited, slowing down",
		zap.Float64("requests_per_sec", float64(next)),
	)
}

func (h *hostLimiter) relax() {
	h.mu.Lock()
	defer h.mu.Unlock()
	next := h.cur * 6 / 5
	if next > h.base*2 {
		next = h.base * 2
	}
	h.cur = next
	h.lim.SetLimit(next)
}

// currentRate exposes the adapted rate for tests.
func (h *hostLimiter) currentRate() rate.Limit {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cur
}
