package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api"
	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-admin/internal/cache"
	"github.com/aaravmahajanofficial/catalog-admin/internal/config"
	"github.com/aaravmahajanofficial/catalog-admin/internal/health"
	repository "github.com/aaravmahajanofficial/catalog-admin/internal/repositories"
	service "github.com/aaravmahajanofficial/catalog-admin/internal/services"
	"github.com/aaravmahajanofficial/catalog-admin/internal/storage"
	"github.com/aaravmahajanofficial/catalog-admin/internal/telemetry"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
)

func newServeCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, config.MustLoad(configPath), autoMigrate)
		},
	}

	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "Apply the schema before serving")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, autoMigrate bool) error {
	// Tracing setup
	shutdownTracing, err := telemetry.InitTracerProvider(ctx, cfg.Otel)
	if err != nil {
		return err
	}

	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Database setup
	utils.SetDBTimeout(cfg.Database.QueryTimeout)

	repos, err := repository.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("error accessing the database: %w", err)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	if autoMigrate {
		if err := repository.Migrate(ctx, repos.DB); err != nil {
			return err
		}
	}

	// Redis setup, optional
	var (
		categoryCache cache.Cache
		rateLimiter   middleware.RateLimiter
	)

	if cfg.RedisConnect.Enabled() {
		client, err := cache.NewRedisClient(ctx, &cfg.RedisConnect)
		if err != nil {
			return fmt.Errorf("error accessing the redis instance: %w", err)
		}

		categoryCache = cache.NewRedisCache(client, &cfg.Cache)

		defer categoryCache.Close()

		if cfg.RateLimit.Enabled() {
			rateLimiter = repository.NewRateLimitRepo(client, &cfg.RateLimit)
		}
	}

	// Upload storage
	store := storage.NewFileSystemStorage(afero.NewOsFs(), cfg.Storage.Location, cfg.Storage.URLPrefix)
	if err := store.Init(); err != nil {
		return err
	}

	categoryService := service.NewCategoryService(repos.Category, categoryCache, cfg.Cache.DefaultTTL)
	productService := service.NewProductService(repos.Product, repos.Category, repos.User, store)
	userService := service.NewUserService(repos.User, repos.Category)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		return err
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("uploads", cfg.Storage.Location))

	// Setup router
	handler, err := api.NewRouter(
		api.Services{Category: categoryService, Product: productService, User: userService},
		store,
		api.Options{
			MaxUploadBytes:    cfg.MaxUploadBytes,
			LowStockThreshold: cfg.Catalog.LowStockThreshold,
			AllowedOrigins:    cfg.CORS.AllowedOrigins,
			Health:            healthHandler.Handler(),
			ServiceName:       cfg.Otel.ServiceName,
			RateLimiter:       rateLimiter,
		},
	)
	if err != nil {
		return err
	}

	// Setup http server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	serverErr := make(chan error, 1)

	go func() {
		slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}

		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
		return err
	}

	slog.Info("✅ Server shut down gracefully. All connections closed.")

	return nil
}
