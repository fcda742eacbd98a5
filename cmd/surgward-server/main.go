package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/surgward/surgward/internal/config"
	"github.com/surgward/surgward/internal/domain/followup"
	"github.com/surgward/surgward/internal/domain/media"
	"github.com/surgward/surgward/internal/domain/news"
	"github.com/surgward/surgward/internal/domain/patient"
	"github.com/surgward/surgward/internal/domain/registration"
	"github.com/surgward/surgward/internal/domain/staff"
	"github.com/surgward/surgward/internal/domain/stats"
	"github.com/surgward/surgward/internal/platform/apperr"
	"github.com/surgward/surgward/internal/platform/auth"
	"github.com/surgward/surgward/internal/platform/db"
	"github.com/surgward/surgward/internal/platform/metrics"
	"github.com/surgward/surgward/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "surgward-server",
		Short: "Surgical ward case-management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour

	// Session store: Redis when configured, in-process otherwise.
	var sessions auth.SessionStore
	if cfg.RedisURL != "" {
		redisStore, err := auth.NewRedisSessionStore(cfg.RedisURL, sessionTTL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		if err := redisStore.Ping(ctx); err != nil {
			logger.Fatal().Err(err).Msg("redis unreachable")
		}
		sessions = redisStore
		logger.Info().Msg("using redis session store")
	} else {
		memStore := auth.NewMemorySessionStore(sessionTTL)
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				if n := memStore.Sweep(); n > 0 {
					logger.Debug().Int("expired", n).Msg("swept sessions")
				}
			}
		}()
		sessions = memStore
		logger.Info().Msg("using in-memory session store")
	}

	var issuer *auth.TokenIssuer
	if cfg.JWTSigningKey != "" {
		issuer = auth.NewTokenIssuer([]byte(cfg.JWTSigningKey), sessionTTL)
	}

	prom := metrics.NewProvider()

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(prom.Middleware())
	e.Use(auth.SessionMiddleware(sessions, issuer, cfg.SessionCookie))

	// Repositories
	staffRepo := staff.NewRepo(pool)
	patientRepo := patient.NewRepo(pool)
	archiveRepo := patient.NewArchiveRepo(pool)
	bedRepo := patient.NewBedRepo(pool)
	followupRepo := followup.NewRepo(pool)
	mediaRepo := media.NewRepo(pool)
	newsRepo := news.NewRepo(pool)
	commentRepo := news.NewCommentRepo(pool)
	statsRepo := stats.NewRepo(pool)
	registrationRepo := registration.NewRepo(pool)

	txRunner := db.NewPoolTxRunner(pool)

	// Services
	staffSvc := staff.NewService(staffRepo)
	patientSvc := patient.NewService(patientRepo, archiveRepo, bedRepo, txRunner)
	patientSvc.SetOccupancyRecorder(prom)
	followupSvc := followup.NewService(followupRepo, patientRepo)
	mediaSvc := media.NewService(mediaRepo)
	newsSvc := news.NewService(newsRepo, commentRepo, txRunner)
	statsSvc := stats.NewService(statsRepo)
	registrationSvc := registration.NewService(registrationRepo)

	// Routes
	api := e.Group("/api")
	staff.NewHandler(staffSvc, sessions, issuer, cfg.SessionCookie, sessionTTL).RegisterRoutes(api)
	patient.NewHandler(patientSvc).RegisterRoutes(api)
	followup.NewHandler(followupSvc).RegisterRoutes(api)
	media.NewHandler(mediaSvc).RegisterRoutes(api)
	news.NewHandler(newsSvc).RegisterRoutes(api)
	stats.NewHandler(statsSvc).RegisterRoutes(api)
	registration.NewHandler(registrationSvc).RegisterRoutes(api)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))
	e.GET("/metrics", prom.Handler())

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
