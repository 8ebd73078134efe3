package gateway

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/voyageplan/trip-planner/internal/model"
	"github.com/voyageplan/trip-planner/pkg/metrics"
)

// DailyForecast returns up to `days` per-day weather summaries for the
// coordinates, preferring the long-range daily source and falling back to
// aggregating the 3-hour forecast. An empty slice means no usable provider.
//
// When startDate parses as an ISO date, the sequence is sliced to begin at
// the first entry on or after it before truncation.
func (g *Gateway) DailyForecast(ctx context.Context, lat, lon float64, days int, startDate string) []model.DailyWeather {
	if g.apiKey == "" || days <= 0 {
		return nil
	}

	// Ordered fallback chain; the first source with data wins.
	attempts := []struct {
		name  string
		fetch func(context.Context, float64, float64) []model.DailyWeather
	}{
		{"onecall_daily", g.oneCallDaily},
		{"forecast_3h", g.forecastAggregate},
	}

	for i, attempt := range attempts {
		entries := attempt.fetch(ctx, lat, lon)
		if len(entries) == 0 {
			continue
		}
		if i > 0 {
			metrics.RecordFallback("weather")
		}
		return sliceFromStart(entries, startDate, days)
	}

	g.logger.Warn("all weather sources failed", zap.Float64("lat", lat), zap.Float64("lon", lon))
	return nil
}

type oneCallResponse struct {
	Daily []struct {
		Dt   int64 `json:"dt"`
		Temp struct {
			Min *float64 `json:"min"`
			Max *float64 `json:"max"`
		} `json:"temp"`
		Pop float64 `json:"pop"`
	} `json:"daily"`
}

// oneCallDaily queries the One Call 3.0 daily forecast (up to 8 days).
func (g *Gateway) oneCallDaily(ctx context.Context, lat, lon float64) []model.DailyWeather {
	var payload oneCallResponse
	start := time.Now()
	resp, err := g.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":     fmt.Sprintf("%f", lat),
			"lon":     fmt.Sprintf("%f", lon),
			"exclude": "minutely",
			"units":   "metric",
			"appid":   g.apiKey,
		}).
		SetResult(&payload).
		Get(g.oneCallURL)
	metrics.RecordGatewayRequest("onecall_daily", requestStatus(resp, err), time.Since(start).Seconds())

	if err != nil || resp.StatusCode() != http.StatusOK {
		return nil
	}

	out := make([]model.DailyWeather, 0, len(payload.Daily))
	for _, d := range payload.Daily {
		out = append(out, model.DailyWeather{
			Date:              time.Unix(d.Dt, 0).UTC().Format("2006-01-02"),
			MinTemp:           d.Temp.Min,
			MaxTemp:           d.Temp.Max,
			PrecipProbPercent: int(math.Round(d.Pop * 100)),
		})
	}
	return out
}

type forecastResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp    *float64 `json:"temp"`
			TempMin *float64 `json:"temp_min"`
			TempMax *float64 `json:"temp_max"`
		} `json:"main"`
		Pop float64 `json:"pop"`
	} `json:"list"`
}

type dayBucket struct {
	temps []float64
	mins  []float64
	maxs  []float64
	pops  []float64
}

// forecastAggregate collapses the 5-day/3-hour forecast into per-day
// summaries: min of minimums, max of maximums, max precipitation probability.
func (g *Gateway) forecastAggregate(ctx context.Context, lat, lon float64) []model.DailyWeather {
	var payload forecastResponse
	start := time.Now()
	resp, err := g.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":   fmt.Sprintf("%f", lat),
			"lon":   fmt.Sprintf("%f", lon),
			"units": "metric",
			"appid": g.apiKey,
		}).
		SetResult(&payload).
		Get(g.forecastURL)
	metrics.RecordGatewayRequest("forecast_3h", requestStatus(resp, err), time.Since(start).Seconds())

	if err != nil || resp.StatusCode() != http.StatusOK {
		return nil
	}

	byDay := make(map[string]*dayBucket)
	for _, item := range payload.List {
		day, _, found := strings.Cut(item.DtTxt, " ")
		if !found {
			continue
		}
		b := byDay[day]
		if b == nil {
			b = &dayBucket{}
			byDay[day] = b
		}
		if item.Main.Temp != nil {
			b.temps = append(b.temps, *item.Main.Temp)
		}
		if item.Main.TempMin != nil {
			b.mins = append(b.mins, *item.Main.TempMin)
		}
		if item.Main.TempMax != nil {
			b.maxs = append(b.maxs, *item.Main.TempMax)
		}
		b.pops = append(b.pops, item.Pop)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]model.DailyWeather, 0, len(days))
	for _, day := range days {
		b := byDay[day]
		entry := model.DailyWeather{Date: day}
		if tmin, ok := minOf(b.mins, b.temps); ok {
			entry.MinTemp = &tmin
		}
		if tmax, ok := maxOf(b.maxs, b.temps); ok {
			entry.MaxTemp = &tmax
		}
		if len(b.pops) > 0 {
			// Max, not average: one wet window makes the day a rain risk.
			entry.PrecipProbPercent = int(math.Round(maxFloat(b.pops) * 100))
		}
		out = append(out, entry)
	}
	return out
}

// sliceFromStart drops entries before startDate (index 0 when none qualify
// or the date is unparseable), then truncates to days entries.
func sliceFromStart(entries []model.DailyWeather, startDate string, days int) []model.DailyWeather {
	idx := 0
	if sd, err := time.Parse("2006-01-02", strings.TrimSpace(startDate)); err == nil {
		for i, e := range entries {
			d, err := time.Parse("2006-01-02", e.Date)
			if err != nil {
				continue
			}
			if !d.Before(sd) {
				idx = i
				break
			}
		}
	}

	entries = entries[idx:]
	if len(entries) > days {
		entries = entries[:days]
	}
	return entries
}

func minOf(preferred, fallback []float64) (float64, bool) {
	if len(preferred) > 0 {
		return minFloat(preferred), true
	}
	if len(fallback) > 0 {
		return minFloat(fallback), true
	}
	return 0, false
}

func maxOf(preferred, fallback []float64) (float64, bool) {
	if len(preferred) > 0 {
		return maxFloat(preferred), true
	}
	if len(fallback) > 0 {
		return maxFloat(fallback), true
	}
	return 0, false
}

func minFloat(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxFloat(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
