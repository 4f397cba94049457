package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bistrohunter/internal/config"
	"github.com/kailas-cloud/bistrohunter/internal/db"
	dbMemory "github.com/kailas-cloud/bistrohunter/internal/db/memory"
	dbRedis "github.com/kailas-cloud/bistrohunter/internal/db/redis"
	"github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/filter"
	logpkg "github.com/kailas-cloud/bistrohunter/internal/logger"
	"github.com/kailas-cloud/bistrohunter/internal/metrics"
	"github.com/kailas-cloud/bistrohunter/internal/repository/recordcache"
	restaurantrepo "github.com/kailas-cloud/bistrohunter/internal/repository/restaurant"
	"github.com/kailas-cloud/bistrohunter/internal/transport/airtable"
	chiTransport "github.com/kailas-cloud/bistrohunter/internal/transport/chi"
	"github.com/kailas-cloud/bistrohunter/internal/transport/geocoding"
	healthuc "github.com/kailas-cloud/bistrohunter/internal/usecase/health"
	searchuc "github.com/kailas-cloud/bistrohunter/internal/usecase/search"
	"github.com/kailas-cloud/bistrohunter/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting bistrohunter API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("airtable_table", cfg.Airtable.Table),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Record store: Airtable, optionally behind the result cache
	airtableClient := airtable.NewClient(&airtable.Config{
		BaseURL: cfg.Airtable.BaseURL,
		BaseID:  cfg.Airtable.BaseID,
		Table:   cfg.Airtable.Table,
		Token:   cfg.Airtable.Token,
		Timeout: time.Duration(cfg.Airtable.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	var lister restaurant.Lister = airtableClient
	var cachePinger healthuc.CachePinger
	if cfg.Cache.Enabled {
		store := buildCacheStore(cfg.Cache, logger)
		defer store.Close()

		lister = recordcache.New(
			airtableClient, store, time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.RecordCacheTotal, logger,
		)
		cachePinger = store
		logger.Info("Result cache enabled",
			zap.String("driver", cfg.Cache.Driver),
			zap.Int("ttl_sec", cfg.Cache.TTLSec),
		)
	}

	fields, schema := storeSchema(cfg.Airtable.Fields)
	repo := restaurantrepo.New(lister, airtable.Formula{}, restaurantrepo.Options{
		View:   cfg.Airtable.View,
		Fields: fields,
	})

	// Place resolver
	resolver, err := geocoding.NewResolver(&geocoding.Config{
		APIKey:  cfg.Geocoding.APIKey,
		Country: cfg.Geocoding.Country,
		BaseURL: cfg.Geocoding.BaseURL,
		Timeout: time.Duration(cfg.Geocoding.TimeoutSec) * time.Second,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("Failed to create geocoding resolver", zap.Error(err))
	}

	// Use case services
	searchCfg := searchuc.Config{
		PerZoneTarget:             cfg.Search.PerZoneTarget,
		CityTarget:                cfg.Search.CityTarget,
		MaxRadiusKm:               cfg.Search.MaxRadiusKm,
		RadiusStepKm:              cfg.Search.RadiusStepKm,
		ZoneInitialRadiusKm:       cfg.Search.ZoneInitialRadiusKm,
		CoordinateInitialRadiusKm: cfg.Search.CoordinateInitialRadiusKm,
		CityInitialRadiusKm:       cfg.Search.CityInitialRadiusKm,
		PageSize:                  cfg.Search.PageSize,
		UseViewport:               cfg.Search.UseViewport,
	}
	if err := searchCfg.Validate(); err != nil {
		logger.Fatal("Invalid search configuration", zap.Error(err))
	}
	searchSvc := searchuc.New(repo, resolver, schema, searchCfg, logger)

	// Pass nil interface (not typed nil pointer!) when the cache is disabled.
	healthSvc := healthuc.New(airtableClient, cachePinger)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildCacheStore creates the result cache backend for the configured driver.
// redis and valkey share the rueidis store.
func buildCacheStore(cfg config.CacheConfig, logger *zap.Logger) db.Store {
	switch cfg.Driver {
	case "memory":
		return dbMemory.NewStore(dbMemory.Config{
			MaxEntries: cfg.MaxEntries,
			TTL:        time.Duration(cfg.TTLSec) * time.Second,
		})
	case "redis", "valkey":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		ctx := context.Background()
		if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to cache store", zap.Strings("addrs", cfg.Addrs))
		return store
	default:
		logger.Fatal("Unknown cache driver", zap.String("driver", cfg.Driver))
		return nil
	}
}

// storeSchema overlays configured column names on the table defaults.
func storeSchema(fc config.FieldsConfig) (restaurantrepo.Fields, filter.Schema) {
	f := restaurantrepo.DefaultFields()
	s := filter.DefaultSchema()

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&f.CID, fc.CID)
	set(&f.Title, fc.Title)
	set(&f.Description, fc.Description)
	set(&f.URL, fc.URL)
	set(&f.PriceRange, fc.PriceRange)
	set(&f.Score, fc.Score)
	set(&f.Lat, fc.Lat)
	set(&f.Lon, fc.Lng)
	set(&f.Categories, fc.Categories)

	set(&s.Price, fc.PriceRange)
	set(&s.Categories, fc.Categories)
	set(&s.Lat, fc.Lat)
	set(&s.Lon, fc.Lng)
	set(&s.Day, fc.Day)
	set(&s.Reviews, fc.Reviews)
	return f, s
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
