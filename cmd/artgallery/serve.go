package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Deepender31/artwork-backend/internal/api"
	"github.com/Deepender31/artwork-backend/internal/api/handler"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
	"github.com/Deepender31/artwork-backend/internal/core/service"
	mongostore "github.com/Deepender31/artwork-backend/internal/infrastructure/db/mongo"
	redisstore "github.com/Deepender31/artwork-backend/internal/infrastructure/db/redis"
	"github.com/Deepender31/artwork-backend/internal/infrastructure/queue"
	"github.com/Deepender31/artwork-backend/internal/infrastructure/storage"
	"github.com/Deepender31/artwork-backend/internal/pkg/config"
	"github.com/Deepender31/artwork-backend/pkg/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	// --- Storage ---
	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	repos := mongostore.NewRepositories(db)
	if err := repos.EnsureIndexes(ctx); err != nil {
		return err
	}

	checks := map[string]handler.Check{
		"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}

	var idem ports.IdempotencyStore
	if cfg.Redis.Enabled {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		idem = redisstore.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Warn().Msg("redis disabled, Idempotency-Key headers are ignored")
	}

	uploadCfg := storage.UploadConfig{
		Backend:       cfg.Upload.Backend,
		Dir:           cfg.Upload.Dir,
		MaxBytes:      cfg.Upload.MaxBytes,
		Bucket:        cfg.Upload.GCSBucket,
		PublicBaseURL: cfg.Upload.PublicBaseURL,
	}
	images, err := storage.New(ctx, uploadCfg, logger.Component("storage"))
	if err != nil {
		return err
	}
	if closer, ok := images.(io.Closer); ok {
		defer closer.Close()
	}

	// --- Background reconciler ---
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	reconciler := queue.NewReconciler(queue.Config{
		Workers:     cfg.Reconciler.Workers,
		MaxAttempts: cfg.Reconciler.MaxAttempts,
		Backoff:     cfg.Reconciler.Backoff,
	}, repos.Artworks, logger.Component("reconciler"))
	reconciler.Start(workerCtx)
	defer func() {
		stopWorkers()
		reconciler.Wait()
	}()

	// --- Services ---
	authService := service.NewAuthService(repos.Users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger.Component("auth_service"))
	authz := service.NewOwnershipAuthorizer(authService, logger.Component("authorizer"))
	queryService := service.NewQueryService(repos.Artworks, repos.Comments, repos.Users, logger.Component("query_service"))
	artworkService := service.NewArtworkService(repos.Artworks, repos.Comments, repos.Orders, images, authz, logger.Component("artwork_service"))
	commentService := service.NewCommentService(repos.Comments, repos.Artworks, authz, reconciler, logger.Component("comment_service"))
	orderService := service.NewOrderService(repos.Orders, repos.Artworks, repos.Users, queryService, idem, authz, logger.Component("order_service"))

	deps := api.Dependencies{
		Auth:         authService,
		Artworks:     artworkService,
		Comments:     commentService,
		Orders:       orderService,
		Query:        queryService,
		HealthChecks: checks,
		JWTSecret:    cfg.Auth.JWTSecret,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		BodyLimit:    cfg.HTTP.BodyLimit,
		Log:          logger.Component("http"),
	}
	if local, ok := images.(*storage.LocalStore); ok {
		deps.UploadsDir = local.Dir()
	}

	return run(ctx, api.NewRouter(deps), cfg.HTTP, log)
}

// run serves until ctx is cancelled and then drains in-flight requests.
func run(ctx context.Context, e *echo.Echo, cfg config.HTTPConfig, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
