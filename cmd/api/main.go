// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hearthline/estate-assistant/internal/composer"
	"github.com/hearthline/estate-assistant/internal/config"
	"github.com/hearthline/estate-assistant/internal/events"
	"github.com/hearthline/estate-assistant/internal/handler"
	"github.com/hearthline/estate-assistant/internal/listing"
	"github.com/hearthline/estate-assistant/internal/middleware"
	"github.com/hearthline/estate-assistant/internal/service"
	"github.com/hearthline/estate-assistant/internal/session"
	"github.com/hearthline/estate-assistant/pkg/logger"
	"github.com/hearthline/estate-assistant/pkg/tracing"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting estate assistant API")

	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "estate-assistant", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Listing store: Postgres when configured, seeded in-memory store
	// otherwise.
	var store listing.Store
	if cfg.DatabaseURL != "" {
		pg, err := listing.NewPostgresStore(cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMaxIdleConns)
		if err != nil {
			log.Error("failed to connect to listings database", zap.Error(err))
			os.Exit(1)
		}
		defer pg.Close()
		store = pg
	} else {
		log.Info("no DATABASE_URL set, using seeded in-memory listings")
		store = listing.NewMemoryStore(listing.SeedEntries()...)
	}

	// Turn event publishing is optional.
	var (
		eventsClient *events.Client
		sink         session.Sink
	)
	if cfg.NATSURL != "" {
		eventsClient, err = events.Connect(events.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			log.Error("failed to connect to NATS", zap.Error(err))
			os.Exit(1)
		}
		defer eventsClient.Close()

		publisher := events.NewPublisher(eventsClient, log)
		if err := publisher.EnsureStream(ctx); err != nil {
			log.Error("failed to ensure turns stream", zap.Error(err))
			os.Exit(1)
		}
		sink = publisher
	}

	// Assemble the conversation pipeline.
	adapter := listing.NewAdapter(store)
	comp := composer.New(adapter, log)
	manager := service.NewSessionManager(comp, sink, log)

	healthHandler := handler.NewHealthHandler(eventsClient)
	sessionHandler := handler.NewSessionHandler(manager, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.Get)
				r.Delete("/", sessionHandler.Delete)
				r.Post("/messages", sessionHandler.Submit)
			})
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	// Tear down live sessions so pending timers and lookups are
	// cancelled before the process exits.
	manager.Shutdown()

	log.Info("server stopped")
}
