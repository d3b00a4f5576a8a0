package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/accounting_backoffice/internal/core/services"
	"github.com/SscSPs/accounting_backoffice/internal/handlers"
	"github.com/SscSPs/accounting_backoffice/internal/middleware"
	"github.com/SscSPs/accounting_backoffice/internal/platform/config"
	"github.com/SscSPs/accounting_backoffice/internal/repositories/attachments"
	"github.com/SscSPs/accounting_backoffice/internal/repositories/database/pgsql"
	"github.com/SscSPs/accounting_backoffice/internal/utils"
	"github.com/SscSPs/accounting_backoffice/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newServeCommand(logger *slog.Logger) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				logger.Error("Failed to load config", slog.String("error", err.Error()))
				return err
			}
			return runServer(cmd.Context(), cfg, logger, !skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "start without applying pending migrations")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, runMigrations bool) error {
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		return err
	}
	defer database.ClosePgxPool(dbPool)

	if runMigrations {
		logger.Info("Running database migrations...")
		if err := database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			return err
		}
	}

	store, err := attachments.NewFilesystemStore(cfg.AttachmentDir)
	if err != nil {
		logger.Error("Failed to initialize attachment store", slog.String("error", err.Error()))
		return err
	}

	repos := pgsql.NewRepositoryProvider(dbPool, store)
	serviceContainer := services.NewServiceContainer(cfg, repos)

	if err := handlers.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("Invalid REDIS_URL", slog.String("error", err.Error()))
			return err
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}
	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		return err
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}

	r.Use(
		cors.New(corsConfig),
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.RateLimit(rateLimiter),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		return err
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		return err
	}
	return nil
}
