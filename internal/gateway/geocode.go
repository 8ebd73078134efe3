package gateway

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/voyageplan/trip-planner/pkg/metrics"
)

type geocodeEntry struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// ResolveCoordinates resolves a place name to its best-match coordinates via
// OpenWeather direct geocoding. The second return is false when the key is
// missing, the place is unknown, or the request fails.
func (g *Gateway) ResolveCoordinates(ctx context.Context, place string) (Coordinates, bool) {
	if g.apiKey == "" {
		return Coordinates{}, false
	}

	var entries []geocodeEntry
	start := time.Now()
	resp, err := g.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     place,
			"limit": "1",
			"appid": g.apiKey,
		}).
		SetResult(&entries).
		Get(g.geocodeURL)
	metrics.RecordGatewayRequest("geocoding", requestStatus(resp, err), time.Since(start).Seconds())

	if err != nil {
		g.logger.Warn("geocoding request failed", zap.String("place", place), zap.Error(err))
		return Coordinates{}, false
	}
	if resp.StatusCode() != http.StatusOK || len(entries) == 0 {
		g.logger.Debug("geocoding returned no match",
			zap.String("place", place),
			zap.Int("status", resp.StatusCode()),
		)
		return Coordinates{}, false
	}

	return Coordinates{Lat: entries[0].Lat, Lon: entries[0].Lon}, true
}

func requestStatus(resp interface{ StatusCode() int }, err error) string {
	if err != nil {
		return "error"
	}
	return strconv.Itoa(resp.StatusCode())
}
