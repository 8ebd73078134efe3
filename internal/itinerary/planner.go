package itinerary

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/voyageplan/trip-planner/internal/gateway"
	"github.com/voyageplan/trip-planner/internal/model"
	"github.com/voyageplan/trip-planner/pkg/logger"
	"github.com/voyageplan/trip-planner/pkg/metrics"
)

// DataSource is the slice of the external data gateway the planner consumes.
type DataSource interface {
	ResolveCoordinates(ctx context.Context, place string) (gateway.Coordinates, bool)
	DailyForecast(ctx context.Context, lat, lon float64, days int, startDate string) []model.DailyWeather
	DestinationFact(ctx context.Context, place string) string
}

// Planner assembles a full trip plan from resolved slots and external data.
type Planner struct {
	data     DataSource
	composer *Composer
	logger   *logger.Logger
}

// NewPlanner creates a planner over the given data source and composer.
func NewPlanner(data DataSource, composer *Composer, log *logger.Logger) *Planner {
	return &Planner{
		data:     data,
		composer: composer,
		logger:   log,
	}
}

// Plan returns the opening remark (destination fact) and the per-day lines.
// Weather is best effort: unresolved coordinates or provider failure just
// degrade the day lines.
func (p *Planner) Plan(ctx context.Context, destination string, days, groupSize int, preferences []string, startDate string) (string, []string) {
	fact := p.data.DestinationFact(ctx, destination)

	var weather []model.DailyWeather
	if coords, ok := p.data.ResolveCoordinates(ctx, destination); ok {
		weather = p.data.DailyForecast(ctx, coords.Lat, coords.Lon, days, startDate)
	} else {
		p.logger.Debug("geocoding unresolved, composing without weather",
			zap.String("destination", destination))
	}

	lines := p.composer.Compose(destination, days, groupSize, preferences, weather)
	metrics.ItinerariesComposedTotal.Inc()

	opening := fmt.Sprintf("Wow, %s is a nice place — fun fact: %s", model.TitleCase(destination), fact)
	return opening, lines
}
