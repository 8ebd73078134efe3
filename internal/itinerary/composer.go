// Package itinerary renders deterministic day-by-day trip plans from
// resolved dialog slots and external data.
package itinerary

import (
	"fmt"
	"math"
	"strings"

	"github.com/voyageplan/trip-planner/internal/model"
)

// Composer renders day lines from an immutable activity table.
type Composer struct {
	pools       map[string][]string
	defaultPool []string
}

// NewComposer creates a composer over the given activity table. Both the
// table and default pool are treated as immutable configuration.
func NewComposer(pools map[string][]string, defaultPool []string) *Composer {
	return &Composer{
		pools:       pools,
		defaultPool: defaultPool,
	}
}

// DefaultActivityPools maps each preference tag to its activity list.
func DefaultActivityPools() map[string][]string {
	return map[string][]string{
		"nightlife":         {"evening at a popular club area", "sunset beach shacks", "live music venue"},
		"food":              {"local seafood lunch", "street food crawl", "heritage café tasting"},
		"shopping":          {"local market for handicrafts", "flea market visit", "souvenir boutiques"},
		"historical places": {"old town walking tour", "heritage church/fort visit", "museum hour"},
		"natural places":    {"beach and coastline walk", "nature trail / waterfall", "sunrise viewpoint"},
		"street life":       {"promenade stroll", "photo walk", "local square hangout"},
		"famous places":     {"top landmarks circuit", "iconic photo spots", "must-see square/fort"},
	}
}

// DefaultPool is used when no preference maps to any activity.
func DefaultPool() []string {
	return []string{"city highlights tour", "local food tasting", "market visit", "sunset viewpoint"}
}

// PreferenceOptions lists the selectable preference vocabulary in UI order.
func PreferenceOptions() []string {
	return []string{
		"nightlife", "food", "shopping", "historical places",
		"natural places", "street life", "famous places",
	}
}

// Compose produces one line per day, cycling through the activity pool built
// from the preferences in the order they were given. Unknown tags contribute
// nothing; an empty pool falls back to the default pool.
func (c *Composer) Compose(destination string, days, groupSize int, preferences []string, weather []model.DailyWeather) []string {
	var pool []string
	for _, pref := range preferences {
		pool = append(pool, c.pools[strings.ToLower(pref)]...)
	}
	if len(pool) == 0 {
		pool = c.defaultPool
	}

	dest := model.TitleCase(destination)
	plan := make([]string, 0, days)
	for i := 0; i < days; i++ {
		activity := pool[i%len(pool)]

		clause := "weather details unavailable"
		if i < len(weather) {
			if w := weather[i]; w.MinTemp != nil && w.MaxTemp != nil {
				avg := int(math.Round((*w.MinTemp + *w.MaxTemp) / 2))
				clause = fmt.Sprintf("weather is ~%d°C with rain chance %d%%", avg, w.PrecipProbPercent)
			}
		}

		plan = append(plan, fmt.Sprintf("Day %d: %s in %s — %s.", i+1, activity, dest, clause))
	}

	if len(plan) > 0 {
		plan[len(plan)-1] += fmt.Sprintf(" Departure planning for %d traveler(s).", groupSize)
	}
	return plan
}
