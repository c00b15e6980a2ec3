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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pranamithra/scheduler/internal/audit"
	"github.com/pranamithra/scheduler/internal/config"
	dbpkg "github.com/pranamithra/scheduler/internal/db"
	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/infra/blob"
	"github.com/pranamithra/scheduler/internal/infra/cache"
	"github.com/pranamithra/scheduler/internal/routes"
	"github.com/pranamithra/scheduler/internal/timezone"
	"github.com/pranamithra/scheduler/internal/validators"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrate, _ := cmd.Flags().GetBool("migrate")
			return runServer(migrate)
		},
	}
	cmd.Flags().Bool("migrate", true, "Run migrations before serving")
	return cmd
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsProduction() {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
}

func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.New(os.Stderr), err
	}
	return cfg, newLogger(cfg), nil
}

func runServer(migrate bool) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Database
	db, err := dbpkg.NewDB(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	if migrate {
		if err := dbpkg.Migrate(ctx, db); err != nil {
			logger.Error().Err(err).Msg("migration failed")
			return err
		}
	}

	// Availability cache
	var availability domain.AvailabilityCache = cache.Noop{}
	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, availability cache disabled")
		} else {
			defer client.Close()
			availability = cache.NewRedisAvailability(client, cfg.AvailabilityTTL, logger)
			logger.Info().Dur("ttl", cfg.AvailabilityTTL).Msg("availability cache enabled")
		}
	}

	// Confirmation archive
	var archive blob.Archive = blob.Noop{}
	if cfg.S3.Enabled() {
		archive = blob.NewS3Archive(cfg.S3)
		logger.Info().Str("bucket", cfg.S3.Bucket).Msg("confirmation archive enabled")
	}

	// Audit
	dispatcher := audit.NewDispatcher(audit.New(db), logger)
	defer dispatcher.Close()

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     logger,
		Cache:   availability,
		Archive: archive,
		Audit:   dispatcher,
		Emails:  validators.NewEmailDomain(nil),
		Loc:     timezone.Location(cfg.Timezone),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	case <-quit:
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
