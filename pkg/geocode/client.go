// Package geocode resolves one-line street addresses to coordinates using
// the US Census Geocoder, with rate limiting and an optional pluggable cache.
package geocode

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/gridsight/siting-cli/internal/resilience"
)

// ErrNoMatch is returned when the geocoder finds no candidate for an address.
var ErrNoMatch = eris.New("geocode: no match")

// Result holds the geocoding output for an address.
type Result struct {
	Latitude  float64
	Longitude float64
	Quality   string // "rooftop" or "approximate"
	Matched   bool
}

// Cache stores geocoding results keyed by normalized address hash.
// Non-matches are cached too, so repeated lookups of a bad address do not
// burn API quota. A nil Result with nil error signals a cache miss.
type Cache interface {
	Get(ctx context.Context, addressHash string) (*Result, error)
	Put(ctx context.Context, addressHash string, result Result) error
}

// Client geocodes one-line addresses.
type Client interface {
	Geocode(ctx context.Context, address string) (*Result, error)
}

// Option configures the geocoder.
type Option func(*geocoder)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *geocoder) {
		g.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit for Census API calls.
func WithRateLimit(rps float64) Option {
	return func(g *geocoder) {
		g.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

// WithCache attaches a result cache.
func WithCache(c Cache) Option {
	return func(g *geocoder) {
		g.cache = c
	}
}

// WithRetry overrides the retry policy for Census API calls.
func WithRetry(b resilience.Backoff) Option {
	return func(g *geocoder) {
		g.retry = b
	}
}

// WithBaseURL overrides the Census endpoint, primarily for tests.
func WithBaseURL(u string) Option {
	return func(g *geocoder) {
		g.baseURL = u
	}
}

type geocoder struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      Cache
	baseURL    string
	retry      resilience.Backoff
	breaker    *resilience.Breaker
}

// NewClient creates a geocoding Client with the given options.
func NewClient(opts ...Option) Client {
	g := &geocoder{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(50, 50), // Census allows ~50 req/s
		baseURL:    censusOneLineURL,
		retry:      resilience.DefaultBackoff(),
		breaker:    resilience.NewBreaker(5, 30*time.Second),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Geocode resolves one address, consulting the cache first. Cached
// non-matches are returned as Matched=false without an API call.
func (g *geocoder) Geocode(ctx context.Context, address string) (*Result, error) {
	key := cacheKey(address)

	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	result, err := g.geocodeCensus(ctx, address)
	if err != nil {
		return nil, err
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, key, *result); err != nil {
			// Cache failures never fail the lookup.
			return result, nil
		}
	}
	return result, nil
}
