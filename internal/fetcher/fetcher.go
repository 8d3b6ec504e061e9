// Package fetcher retrieves the federal datasets behind the siting catalog:
// the EPA eGRID plant inventory (JSON, CSV export, or workbook), the HIFLD
// transmission-line shapefile archive, and the clean energy PPA project
// feed. Downloads are paced per host and retried through the resilience
// package; parsers stream records so the national datasets are never held
// in memory whole.
package fetcher

import (
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// ErrStop ends a table or array scan early without reporting an error.
var ErrStop = eris.New("fetcher: stop scan")

// defaultHostRates lists per-host request budgets, in requests per second,
// for the portals this tool hits. The ArcGIS portal throttles hardest.
func defaultHostRates() map[string]rate.Limit {
	return map[string]rate.Limit{
		"api.epa.gov":              10,
		"opendata.arcgis.com":      5,
		"geocoding.geo.census.gov": 10,
	}
}

// fallbackRate paces requests to hosts without a configured budget.
const fallbackRate rate.Limit = 20
