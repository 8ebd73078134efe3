// Package main is the entry point for the trip-planner API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lpernett/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/voyageplan/trip-planner/internal/config"
	"github.com/voyageplan/trip-planner/internal/dialog"
	"github.com/voyageplan/trip-planner/internal/gateway"
	"github.com/voyageplan/trip-planner/internal/handler"
	"github.com/voyageplan/trip-planner/internal/itinerary"
	"github.com/voyageplan/trip-planner/internal/llm"
	"github.com/voyageplan/trip-planner/internal/middleware"
	"github.com/voyageplan/trip-planner/internal/session"
	"github.com/voyageplan/trip-planner/pkg/logger"
	"github.com/voyageplan/trip-planner/pkg/tracing"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "trip-planner", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Session store: Redis when configured, in-process memory otherwise
	var store session.Store
	if cfg.RedisAddr != "" {
		redisStore, err := session.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory sessions", zap.Error(err))
			store = session.NewMemoryStore()
		} else {
			defer redisStore.Close()
			store = redisStore
			log.Info("using Redis session store", zap.String("addr", cfg.RedisAddr))
		}
	} else {
		store = session.NewMemoryStore()
	}

	// Generative fact backend; nil means curated facts only
	var factClient llm.Client
	if cfg.AnthropicAPIKey != "" {
		factClient, err = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
		if err != nil {
			log.Warn("failed to create Anthropic client, generative facts disabled", zap.Error(err))
		}
	} else if cfg.OpenAIAPIKey != "" {
		factClient, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
		if err != nil {
			log.Warn("failed to create OpenAI client, generative facts disabled", zap.Error(err))
		}
	}
	if cfg.OpenWeatherAPIKey == "" {
		log.Warn("OPENWEATHER_API_KEY not set, weather and geocoding disabled")
	}

	// Wire the planning pipeline
	dataGateway := gateway.New(gateway.Config{
		OpenWeatherAPIKey: cfg.OpenWeatherAPIKey,
		Timeout:           cfg.GatewayTimeout,
		FactClient:        factClient,
		FunFacts:          gateway.DefaultFunFacts(),
		Logger:            log,
	})
	composer := itinerary.NewComposer(itinerary.DefaultActivityPools(), itinerary.DefaultPool())
	planner := itinerary.NewPlanner(dataGateway, composer, log)
	machine := dialog.NewMachine(planner, itinerary.PreferenceOptions(), log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(store)
	chatHandler := handler.NewChatHandler(machine, store, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", "X-Session-ID"},
		ExposedHeaders:   []string{"X-Session-ID", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Demo chat UI
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(cfg.StaticDir, "index.html"))
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/chat", chatHandler.Chat)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
