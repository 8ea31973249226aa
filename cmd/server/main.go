// Command server starts the document-match HTTP API: it loads configuration
// from the environment (with optional .env), opens the SQLite store, wires
// OpenTelemetry tracing, and serves the versioned REST API until SIGINT or
// SIGTERM, then shuts down gracefully.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/docufind/go-match-backend/internal/config"
	"github.com/docufind/go-match-backend/internal/domain"
	httpapi "github.com/docufind/go-match-backend/internal/http"
	"github.com/docufind/go-match-backend/internal/observability"
	"github.com/docufind/go-match-backend/internal/repo"
	"github.com/docufind/go-match-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		ctxFlush, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(ctxFlush); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		log.Fatal().Err(err).Msg("gorm otel plugin failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if sysutil.IsTruthy(sysutil.FirstNonEmpty(os.Getenv("SEED_DEMO"), os.Getenv("SEED"))) {
		if err := seedDemo(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("demo seed failed")
		}
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}

// seedDemo inserts a small set of reports for local exploration. It is a
// no-op when the store already holds data.
func seedDemo(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.DocumentReport{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Msg("store already has reports, skipping demo seed")
		return nil
	}

	lat, lng := -25.9692, 32.5732
	reports := []domain.DocumentReport{
		{
			OwnerID:        "demo-loser",
			Type:           domain.TypePassport,
			Status:         domain.StatusLost,
			DocumentNumber: "AB1234567",
			Title:          "red passport",
			Latitude:       &lat,
			Longitude:      &lng,
		},
		{
			OwnerID:        "demo-finder",
			Type:           domain.TypePassport,
			Status:         domain.StatusFound,
			DocumentNumber: "AB1234567",
			Title:          "found a passport near the market",
			Latitude:       &lat,
			Longitude:      &lng,
		},
		{
			OwnerID: "demo-loser",
			Type:    domain.TypeDriversLicense,
			Status:  domain.StatusLost,
			Title:   "driving licence in a black wallet",
		},
	}
	for i := range reports {
		if _, err := repo.CreateReport(ctx, db, &reports[i]); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(reports)).Msg("demo reports seeded")
	return nil
}
