package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyageplan/trip-planner/internal/model"
	"github.com/voyageplan/trip-planner/pkg/logger"
)

func newTestGateway(t *testing.T, handler http.Handler) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := New(Config{
		OpenWeatherAPIKey: "test-key",
		Timeout:           2 * time.Second,
		FunFacts:          DefaultFunFacts(),
		Logger:            logger.NewNop(),
	})
	g.geocodeURL = srv.URL + "/geo"
	g.oneCallURL = srv.URL + "/onecall"
	g.forecastURL = srv.URL + "/forecast"
	return g
}

func TestDailyForecastPrefersOneCall(t *testing.T) {
	forecastCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/onecall", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.Header().Set("Content-Type", "application/json")
		// 2025-03-01 and 2025-03-02 UTC
		w.Write([]byte(`{"daily":[
			{"dt":1740787200,"temp":{"min":22.0,"max":31.0},"pop":0.4},
			{"dt":1740873600,"temp":{"min":23.0,"max":32.0},"pop":0.1}
		]}`))
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		forecastCalls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	g := newTestGateway(t, mux)
	got := g.DailyForecast(context.Background(), 15.5, 73.8, 2, "")

	require.Len(t, got, 2)
	assert.Equal(t, "2025-03-01", got[0].Date)
	require.NotNil(t, got[0].MinTemp)
	assert.Equal(t, 22.0, *got[0].MinTemp)
	assert.Equal(t, 40, got[0].PrecipProbPercent)
	assert.Zero(t, forecastCalls, "fallback source must not be queried when the daily source has data")
}

func TestDailyForecastFallsBackToAggregation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/onecall", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"list":[
			{"dt_txt":"2025-03-01 09:00:00","main":{"temp":24.0,"temp_min":21.0,"temp_max":27.0},"pop":0.1},
			{"dt_txt":"2025-03-01 15:00:00","main":{"temp":29.0,"temp_min":26.0,"temp_max":31.0},"pop":0.6},
			{"dt_txt":"2025-03-02 09:00:00","main":{"temp":25.0,"temp_min":22.0,"temp_max":28.0},"pop":0.0}
		]}`))
	})

	g := newTestGateway(t, mux)
	got := g.DailyForecast(context.Background(), 15.5, 73.8, 5, "")

	require.Len(t, got, 2)

	day1 := got[0]
	assert.Equal(t, "2025-03-01", day1.Date)
	require.NotNil(t, day1.MinTemp)
	require.NotNil(t, day1.MaxTemp)
	assert.Equal(t, 21.0, *day1.MinTemp, "min of per-entry minimums")
	assert.Equal(t, 31.0, *day1.MaxTemp, "max of per-entry maximums")
	assert.Equal(t, 60, day1.PrecipProbPercent, "max precipitation probability, not the average")

	assert.Equal(t, "2025-03-02", got[1].Date)
	assert.Equal(t, 0, got[1].PrecipProbPercent)
}

func TestDailyForecastAggregationUsesTempWhenBoundsMissing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/onecall", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"list":[
			{"dt_txt":"2025-03-01 09:00:00","main":{"temp":24.0},"pop":0.2},
			{"dt_txt":"2025-03-01 15:00:00","main":{"temp":29.0},"pop":0.3}
		]}`))
	})

	g := newTestGateway(t, mux)
	got := g.DailyForecast(context.Background(), 15.5, 73.8, 1, "")

	require.Len(t, got, 1)
	require.NotNil(t, got[0].MinTemp)
	require.NotNil(t, got[0].MaxTemp)
	assert.Equal(t, 24.0, *got[0].MinTemp)
	assert.Equal(t, 29.0, *got[0].MaxTemp)
}

func TestDailyForecastBothSourcesFail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/onecall", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	g := newTestGateway(t, mux)
	assert.Empty(t, g.DailyForecast(context.Background(), 15.5, 73.8, 5, ""))
}

func TestDailyForecastWithoutAPIKey(t *testing.T) {
	g := New(Config{Logger: logger.NewNop()})
	assert.Empty(t, g.DailyForecast(context.Background(), 15.5, 73.8, 5, ""))
}

func TestSliceFromStart(t *testing.T) {
	entries := []model.DailyWeather{
		{Date: "2025-03-01"},
		{Date: "2025-03-02"},
		{Date: "2025-03-03"},
		{Date: "2025-03-04"},
	}

	tests := []struct {
		name      string
		startDate string
		days      int
		want      []string
	}{
		{"start mid sequence", "2025-03-03", 5, []string{"2025-03-03", "2025-03-04"}},
		{"truncates to days", "2025-03-02", 2, []string{"2025-03-02", "2025-03-03"}},
		{"start before sequence", "2025-02-01", 2, []string{"2025-03-01", "2025-03-02"}},
		{"start after sequence keeps index zero", "2025-04-01", 2, []string{"2025-03-01", "2025-03-02"}},
		{"unparseable date keeps index zero", "next monday", 1, []string{"2025-03-01"}},
		{"empty date keeps index zero", "", 1, []string{"2025-03-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sliceFromStart(entries, tt.startDate, tt.days)
			dates := make([]string, len(got))
			for i, e := range got {
				dates[i] = e.Date
			}
			assert.Equal(t, tt.want, dates)
		})
	}
}
