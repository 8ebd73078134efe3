package itinerary

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyageplan/trip-planner/internal/model"
)

func f(v float64) *float64 { return &v }

func newTestComposer() *Composer {
	return NewComposer(DefaultActivityPools(), DefaultPool())
}

func TestComposeLineFormat(t *testing.T) {
	c := newTestComposer()
	weather := []model.DailyWeather{
		{Date: "2025-03-01", MinTemp: f(22.0), MaxTemp: f(31.0), PrecipProbPercent: 40},
	}

	lines := c.Compose("goa", 1, 2, []string{"food"}, weather)

	require.Len(t, lines, 1)
	assert.Equal(t,
		"Day 1: local seafood lunch in Goa — weather is ~27°C with rain chance 40%."+
			" Departure planning for 2 traveler(s).",
		lines[0])
}

func TestComposeAveragesAndRoundsTemperature(t *testing.T) {
	c := newTestComposer()
	weather := []model.DailyWeather{
		{Date: "2025-03-01", MinTemp: f(20.0), MaxTemp: f(25.0), PrecipProbPercent: 10},
		{Date: "2025-03-02", MinTemp: f(20.2), MaxTemp: f(24.2), PrecipProbPercent: 0},
	}

	lines := c.Compose("goa", 2, 1, []string{"food"}, weather)

	// (20+25)/2 = 22.5 rounds to 23
	assert.Contains(t, lines[0], "~23°C")
	assert.Contains(t, lines[1], "~22°C")
}

func TestComposeWeatherUnavailable(t *testing.T) {
	c := newTestComposer()

	tests := []struct {
		name    string
		weather []model.DailyWeather
	}{
		{"no weather at all", nil},
		{"missing temperatures", []model.DailyWeather{{Date: "2025-03-01", PrecipProbPercent: 50}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := c.Compose("goa", 1, 2, []string{"food"}, tt.weather)
			assert.Contains(t, lines[0], "— weather details unavailable.")
		})
	}
}

func TestComposeShortWeatherCoversOnlyLeadingDays(t *testing.T) {
	c := newTestComposer()
	weather := []model.DailyWeather{
		{Date: "2025-03-01", MinTemp: f(20.0), MaxTemp: f(30.0), PrecipProbPercent: 20},
	}

	lines := c.Compose("goa", 3, 2, []string{"food"}, weather)

	assert.Contains(t, lines[0], "~25°C")
	assert.Contains(t, lines[1], "weather details unavailable")
	assert.Contains(t, lines[2], "weather details unavailable")
}

func TestComposeCyclicReuse(t *testing.T) {
	c := newTestComposer()

	// One preference category yields a 3-activity pool; day 4 wraps to day 1.
	lines := c.Compose("goa", 7, 2, []string{"food"}, nil)

	require.Len(t, lines, 7)
	for i := 0; i < 7; i++ {
		assert.Contains(t, lines[i], DefaultActivityPools()["food"][i%3])
	}
}

func TestComposePoolPreservesPreferenceOrder(t *testing.T) {
	c := newTestComposer()

	lines := c.Compose("goa", 6, 2, []string{"shopping", "food"}, nil)

	shopping := DefaultActivityPools()["shopping"]
	food := DefaultActivityPools()["food"]
	for i := 0; i < 3; i++ {
		assert.Contains(t, lines[i], shopping[i])
		assert.Contains(t, lines[i+3], food[i])
	}
}

func TestComposeUnknownPreferencesFallBackToDefaultPool(t *testing.T) {
	c := newTestComposer()

	lines := c.Compose("goa", 4, 2, []string{"skydiving"}, nil)

	for i, activity := range DefaultPool() {
		assert.Contains(t, lines[i], activity)
	}
}

func TestComposeGroupSizeOnlyOnLastLine(t *testing.T) {
	c := newTestComposer()

	lines := c.Compose("goa", 3, 4, []string{"food"}, nil)

	suffix := fmt.Sprintf(" Departure planning for %d traveler(s).", 4)
	assert.NotContains(t, lines[0], suffix)
	assert.NotContains(t, lines[1], suffix)
	assert.Contains(t, lines[2], suffix)
}

func TestComposeTitleCasesDestination(t *testing.T) {
	c := newTestComposer()

	lines := c.Compose("old goa", 1, 1, []string{"food"}, nil)

	assert.Contains(t, lines[0], "in Old Goa —")
}
