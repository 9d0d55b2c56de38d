// Package stats computes aggregate travel statistics over the full
// destination collection. The aggregator is pure: no state of its own,
// recomputed on every call, so it can never go stale.
package stats

import (
	"strings"

	"github.com/mboehm/travellog/internal/domain"
)

// UnknownContinent is the bucket for countries absent from the lookup table.
// It never counts toward UniqueContinents.
const UnknownContinent = "Unknown"

// Summary holds the derived statistics for one destination collection.
type Summary struct {
	Total            int `json:"total"`
	Visited          int `json:"visited"`
	Wishlist         int `json:"wishlist"`
	UniqueCountries  int `json:"unique_countries"`
	UniqueContinents int `json:"unique_continents"`
	TotalPhotos      int `json:"total_photos"`
}

// Aggregator derives statistics using an explicit country→continent table.
// The table is a deliberately lossy heuristic, not a geographic database:
// unmapped countries fall into the Unknown bucket and count toward no
// continent.
type Aggregator struct {
	continents map[string]string
}

// NewAggregator constructs an Aggregator over the given lookup table.
// Pass Continents() for the built-in table.
func NewAggregator(continents map[string]string) *Aggregator {
	return &Aggregator{continents: continents}
}

// Summarize computes the statistics for the full collection (not a filtered
// view). Country identity is case-sensitive after trimming surrounding
// whitespace; only visited destinations contribute countries and continents,
// while photos are counted across all statuses.
func (a *Aggregator) Summarize(dests []domain.Destination) Summary {
	s := Summary{Total: len(dests)}

	countries := make(map[string]struct{})
	continents := make(map[string]struct{})

	for _, d := range dests {
		s.TotalPhotos += len(d.Photos)

		switch d.Status {
		case domain.StatusVisited:
			s.Visited++
		case domain.StatusWishlist:
			s.Wishlist++
		}

		if d.Status != domain.StatusVisited {
			continue
		}
		country := strings.TrimSpace(d.Country)
		if country == "" {
			continue
		}
		countries[country] = struct{}{}

		continent, ok := a.continents[country]
		if !ok {
			continent = UnknownContinent
		}
		continents[continent] = struct{}{}
	}

	s.UniqueCountries = len(countries)
	delete(continents, UnknownContinent)
	s.UniqueContinents = len(continents)

	return s
}
