// Package catalog owns the datasets the siting engine scores against:
// candidate sites, the eGRID power plant inventory, and clean energy PPA
// projects. A Catalog is an explicit value handed to callers; there is no
// package-level cache, so two commands can hold independent catalogs without
// sharing state.
package catalog

import (
	"sort"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/gridsight/siting-cli/internal/model"
)

// ErrSiteNotFound is returned when a site ID does not exist in the catalog.
var ErrSiteNotFound = eris.New("catalog: site not found")

// Catalog is a concurrency-safe container for the loaded datasets. Reads are
// cheap; score recalculation swaps the site slice wholesale under the lock.
type Catalog struct {
	mu      sync.RWMutex
	sites   []model.Site
	plants  []model.PowerPlant
	sources []model.EnergySource
}

// New builds a catalog from already-loaded datasets. Any slice may be nil.
func New(sites []model.Site, plants []model.PowerPlant, sources []model.EnergySource) *Catalog {
	return &Catalog{sites: sites, plants: plants, sources: sources}
}

// Sites returns a copy of the candidate site list.
func (c *Catalog) Sites() []model.Site {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Site, len(c.sites))
	copy(out, c.sites)
	return out
}

// Plants returns a copy of the power plant inventory.
func (c *Catalog) Plants() []model.PowerPlant {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.PowerPlant, len(c.plants))
	copy(out, c.plants)
	return out
}

// Sources returns a copy of the PPA project list.
func (c *Catalog) Sources() []model.EnergySource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.EnergySource, len(c.sources))
	copy(out, c.sources)
	return out
}

// SiteByID looks up one site. Returns ErrSiteNotFound for unknown IDs.
func (c *Catalog) SiteByID(id int) (model.Site, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.sites {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Site{}, eris.Wrapf(ErrSiteNotFound, "id %d", id)
}

// SitesByRegion returns the sites in the named region.
func (c *Catalog) SitesByRegion(region string) []model.Site {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []model.Site
	for _, s := range c.sites {
		if s.Region == region {
			out = append(out, s)
		}
	}
	return out
}

// SitesByState returns the sites in the named state.
func (c *Catalog) SitesByState(state string) []model.Site {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []model.Site
	for _, s := range c.sites {
		if s.State == state {
			out = append(out, s)
		}
	}
	return out
}

// ReplaceSites swaps in a new site list, typically after score recalculation.
func (c *Catalog) ReplaceSites(sites []model.Site) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sites = sites
}

// SetPlants replaces the power plant inventory.
func (c *Catalog) SetPlants(plants []model.PowerPlant) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plants = plants
}

// SetSources replaces the PPA project list.
func (c *Catalog) SetSources(sources []model.EnergySource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources = sources
}

// PlantFilter selects a subset of the plant inventory. Zero values mean "no
// constraint" except MaxCapacityMW, where zero also means unconstrained.
type PlantFilter struct {
	FuelCategories []string
	MinCapacityMW  float64
	MaxCapacityMW  float64
	RenewableOnly  bool
	CleanOnly      bool
}

// FilterPlants applies the filter to the inventory and returns matches in
// catalog order.
func (c *Catalog) FilterPlants(f PlantFilter) []model.PowerPlant {
	c.mu.RLock()
	defer c.mu.RUnlock()

	categories := make(map[string]bool, len(f.FuelCategories))
	for _, cat := range f.FuelCategories {
		categories[cat] = true
	}

	var out []model.PowerPlant
	for _, p := range c.plants {
		if len(categories) > 0 && !categories[p.PrimaryFuelGroup] {
			continue
		}
		if p.NameplateMW < f.MinCapacityMW {
			continue
		}
		if f.MaxCapacityMW > 0 && p.NameplateMW > f.MaxCapacityMW {
			continue
		}
		if f.RenewableOnly && !p.IsRenewable() {
			continue
		}
		if f.CleanOnly && !p.IsClean() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FuelCategoryStat summarizes one fuel category in the inventory.
type FuelCategoryStat struct {
	Category        string  `json:"category"`
	PlantCount      int     `json:"plant_count"`
	TotalCapacityMW float64 `json:"total_capacity_mw"`
	Color           string  `json:"color"`
}

// FuelCategoryStats aggregates the plant inventory by fuel category, largest
// capacity first.
func (c *Catalog) FuelCategoryStats() []FuelCategoryStat {
	c.mu.RLock()
	defer c.mu.RUnlock()

	byCategory := make(map[string]*FuelCategoryStat)
	for _, p := range c.plants {
		stat, ok := byCategory[p.PrimaryFuelGroup]
		if !ok {
			stat = &FuelCategoryStat{
				Category: p.PrimaryFuelGroup,
				Color:    model.FuelCategoryColor(p.PrimaryFuelGroup),
			}
			byCategory[p.PrimaryFuelGroup] = stat
		}
		stat.PlantCount++
		stat.TotalCapacityMW += p.NameplateMW
	}

	stats := make([]FuelCategoryStat, 0, len(byCategory))
	for _, stat := range byCategory {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].TotalCapacityMW > stats[j].TotalCapacityMW
	})
	return stats
}
