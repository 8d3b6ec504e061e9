// Package store persists siting artifacts: saved site evaluations, scenario
// comparisons, the geocoding cache, and the imported catalog datasets. Two
// backends implement the same interface; SQLite is the default for local CLI
// use and Postgres serves shared deployments.
package store

import (
	"context"
	"time"

	"github.com/gridsight/siting-cli/internal/model"
	"github.com/gridsight/siting-cli/pkg/geocode"
)

// EvaluationFilter selects saved evaluations for listing.
type EvaluationFilter struct {
	SiteID int `json:"site_id,omitempty"`
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// SavedEvaluation is a persisted site evaluation with its storage identity.
type SavedEvaluation struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Evaluation model.SiteEvaluation `json:"evaluation"`
	CreatedAt  time.Time            `json:"created_at"`
}

// SavedComparison is a persisted scenario comparison.
type SavedComparison struct {
	ID         string                   `json:"id"`
	Comparison model.ScenarioComparison `json:"comparison"`
	CreatedAt  time.Time                `json:"created_at"`
}

// Store defines the persistence interface for the siting tool.
type Store interface {
	// Evaluations
	SaveEvaluation(ctx context.Context, name string, eval model.SiteEvaluation) (*SavedEvaluation, error)
	GetEvaluation(ctx context.Context, id string) (*SavedEvaluation, error)
	ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]SavedEvaluation, error)
	ClearEvaluations(ctx context.Context) (int64, error)

	// Scenario comparisons
	SaveComparison(ctx context.Context, cmp model.ScenarioComparison) (*SavedComparison, error)
	GetComparison(ctx context.Context, id string) (*SavedComparison, error)

	// Geocode cache
	GetGeocode(ctx context.Context, addressHash string) (*geocode.Result, error)
	PutGeocode(ctx context.Context, addressHash string, result geocode.Result) error

	// Imported catalog datasets
	ReplacePlants(ctx context.Context, plants []model.PowerPlant) (int64, error)
	LoadPlants(ctx context.Context) ([]model.PowerPlant, error)
	SaveSites(ctx context.Context, sites []model.Site) error
	LoadSites(ctx context.Context) ([]model.Site, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// geocodeCache adapts a Store to the geocode.Cache interface.
type geocodeCache struct {
	s Store
}

// NewGeocodeCache exposes a Store's geocode table as a geocode.Cache.
func NewGeocodeCache(s Store) geocode.Cache {
	return &geocodeCache{s: s}
}

func (c *geocodeCache) Get(ctx context.Context, addressHash string) (*geocode.Result, error) {
	return c.s.GetGeocode(ctx, addressHash)
}

func (c *geocodeCache) Put(ctx context.Context, addressHash string, result geocode.Result) error {
	return c.s.PutGeocode(ctx, addressHash, result)
}
