package gateway

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyageplan/trip-planner/pkg/logger"
)

func TestResolveCoordinates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Goa", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"Goa","lat":15.5,"lon":73.8}]`))
	})

	g := newTestGateway(t, mux)
	coords, ok := g.ResolveCoordinates(context.Background(), "Goa")

	require.True(t, ok)
	assert.Equal(t, 15.5, coords.Lat)
	assert.Equal(t, 73.8, coords.Lon)
}

func TestResolveCoordinatesNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	g := newTestGateway(t, mux)
	_, ok := g.ResolveCoordinates(context.Background(), "Atlantis")
	assert.False(t, ok)
}

func TestResolveCoordinatesServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geo", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	g := newTestGateway(t, mux)
	_, ok := g.ResolveCoordinates(context.Background(), "Goa")
	assert.False(t, ok)
}

func TestResolveCoordinatesWithoutAPIKey(t *testing.T) {
	g := New(Config{Logger: logger.NewNop()})
	_, ok := g.ResolveCoordinates(context.Background(), "Goa")
	assert.False(t, ok)
}
