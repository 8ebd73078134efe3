// Package gateway wraps geocoding, weather, and fun-fact providers behind
// stable interfaces. Every lookup degrades to a fallback or an empty result;
// no provider failure reaches the dialog core.
package gateway

import (
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/voyageplan/trip-planner/internal/llm"
	"github.com/voyageplan/trip-planner/pkg/logger"
)

const (
	geocodeURL  = "https://api.openweathermap.org/geo/1.0/direct"
	oneCallURL  = "https://api.openweathermap.org/data/3.0/onecall"
	forecastURL = "https://api.openweathermap.org/data/2.5/forecast"
)

// Coordinates is a geocoded point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Config holds gateway construction parameters.
type Config struct {
	OpenWeatherAPIKey string
	Timeout           time.Duration

	// FactClient is the optional generative backend; nil disables it.
	FactClient llm.Client

	// FunFacts is the curated fallback table keyed by lower-cased place name.
	FunFacts map[string][]string

	Logger *logger.Logger
}

// Gateway is the external data gateway.
type Gateway struct {
	http       *resty.Client
	apiKey     string
	factClient llm.Client
	funFacts   map[string][]string
	logger     *logger.Logger

	// Endpoint URLs, overridable in tests.
	geocodeURL  string
	oneCallURL  string
	forecastURL string
}

// New creates a gateway with the given configuration.
func New(cfg Config) *Gateway {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Global()
	}

	client := resty.New()
	client.SetTimeout(timeout)

	return &Gateway{
		http:        client,
		apiKey:      cfg.OpenWeatherAPIKey,
		factClient:  cfg.FactClient,
		funFacts:    cfg.FunFacts,
		logger:      log,
		geocodeURL:  geocodeURL,
		oneCallURL:  oneCallURL,
		forecastURL: forecastURL,
	}
}

// DefaultFunFacts is the curated fact table shipped with the service.
func DefaultFunFacts() map[string][]string {
	return map[string][]string{
		"goa": {
			"Goa was under Portuguese rule for more than four centuries until 1961.",
			"The Basilica of Bom Jesus in Old Goa is a UNESCO World Heritage Site.",
			"Goa's coastline spans about 100 km with beaches like Baga and Calangute.",
		},
	}
}
