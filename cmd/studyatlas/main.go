package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/auth"
	"github.com/studyatlas/studyatlas/pkg/config"
	"github.com/studyatlas/studyatlas/pkg/middleware"
	"github.com/studyatlas/studyatlas/pkg/observability"
	"github.com/studyatlas/studyatlas/pkg/search"
	"github.com/studyatlas/studyatlas/pkg/seed"
	"github.com/studyatlas/studyatlas/pkg/server"
	"github.com/studyatlas/studyatlas/pkg/storage"
	"github.com/studyatlas/studyatlas/pkg/storage/postgres"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, nil)
	metrics := observability.NewMetrics()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The ephemeral store carries the default dataset so degraded mode
	// serves real content, not an empty site.
	ephemeral := storage.NewMemory()
	if err := seed.Populate(ctx, ephemeral, seed.DefaultDataset(), logger); err != nil {
		log.Fatalf("Failed to seed ephemeral store: %v", err)
	}

	var (
		store    api.Store
		durable  *postgres.Store
		cache    *postgres.Cache
		migrDest api.ContentStore = ephemeral
	)
	if cfg.Storage.PostgresURL != "" {
		durable = postgres.New(cfg.Storage)
		if err := durable.EnsureSchema(ctx); err != nil {
			// The lazy connection retries on every request, so a down
			// database at boot is degraded mode, not a startup failure.
			logger.WithError(err).Warn("schema setup deferred, durable store unavailable")
		}

		var primary api.Store = durable
		if cfg.Storage.CacheEnabled {
			cache, err = postgres.NewCache(durable, cfg.Storage, logger)
			if err != nil {
				log.Fatalf("Failed to initialize cache: %v", err)
			}
			cache.OnHit = func(layer string) { metrics.CacheHitsTotal.WithLabelValues(layer).Inc() }
			cache.OnMiss = func(layer string) { metrics.CacheMissesTotal.WithLabelValues(layer).Inc() }
			primary = cache
		}
		migrDest = primary

		failover := storage.NewFailover(primary, ephemeral, logger)
		failover.OnFallback = func(kind, op, reason string) {
			metrics.StorageFallbacksTotal.WithLabelValues(kind, op, reason).Inc()
		}
		store = failover
	} else {
		logger.Warn("no postgres URL configured, serving from the ephemeral store only")
		store = storage.NewFailover(ephemeral, ephemeral, logger)
	}

	tokens := auth.NewTokenManager(cfg.Auth.UserSecret, cfg.Auth.AdminSecret, cfg.Auth.TokenTTL)

	var google server.GoogleVerifier
	if cfg.Auth.GoogleClientID != "" {
		verifier, err := auth.NewGoogleVerifier(ctx, cfg.Auth.GoogleClientID)
		if err != nil {
			logger.WithError(err).Warn("google sign-in disabled")
		} else {
			google = verifier
		}
	}

	loginLimiter := middleware.NewRateLimiter(middleware.LoginRateLimitConfig())
	loginLimiter.StartCleanup(ctx)

	srv := server.NewServer(server.Config{
		Store:        store,
		Tokens:       tokens,
		Google:       google,
		Logger:       logger,
		LoginLimiter: loginLimiter,
	})
	router := srv.Router()

	searchSvc := search.NewService(store)
	searchSvc.OnQuery = metrics.SearchQueriesTotal.Inc
	searchSvc.RegisterRoutes(router)

	seedHandlers := seed.NewHandlers(store, ephemeral, migrDest, nil, cfg.IsProduction(), logger)
	seedHandlers.OnRow = func(kind, outcome string) {
		metrics.MigratedRowsTotal.WithLabelValues(kind, outcome).Inc()
	}
	seedHandlers.RegisterRoutes(router, srv.RequireAdmin)

	var durablePinger observability.Pinger
	if durable != nil {
		durablePinger = durable
	}
	health := observability.NewHealthChecker(durablePinger)
	router.HandleFunc("/healthz", health.Liveness).Methods(http.MethodGet)
	router.HandleFunc("/readyz", health.Readiness).Methods(http.MethodGet)
	if cfg.Observability.MetricsEnabled {
		router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
		// Registered on the router so the matched route template is
		// available as the path label.
		router.Use(requestMetrics(metrics))
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         3600,
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.AccessLog(logger),
		corsHandler.Handler,
	)(router)

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := observability.NewShutdownManager(logger, httpServer, cfg.Server.ShutdownTimeout)
	if cache != nil {
		shutdown.Register(func(context.Context) error { return cache.Close() })
	}
	if durable != nil {
		shutdown.Register(func(context.Context) error { return durable.Close() })
	}

	go func() {
		logger.WithFields(map[string]interface{}{
			"addr":        httpServer.Addr,
			"environment": cfg.Environment,
		}).Info("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	shutdown.Wait()
}

// requestMetrics records per-route counters using the mux route template
// so path labels stay bounded.
func requestMetrics(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := "unmatched"
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					path = tmpl
				}
			}
			metrics.InstrumentHandler(path, next).ServeHTTP(w, r)
		})
	}
}
