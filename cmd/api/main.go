package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/techfunding/api/internal/di"
	"github.com/techfunding/api/internal/handlers"
	"github.com/techfunding/api/internal/platform/config"
	pfirestore "github.com/techfunding/api/internal/platform/firestore"
	"github.com/techfunding/api/internal/platform/observability"
)

func main() {
	ctx := context.Background()
	startedAt := time.Now().UTC()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")
	ctx = observability.WithLogger(ctx, logger)

	cfg, err := config.Load()
	if err != nil {
		var vErr *config.ValidationError
		if errors.As(err, &vErr) {
			logger.Fatal("invalid configuration", zap.Strings("fields", vErr.Fields()))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	container, err := di.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to assemble dependencies", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := container.Close(closeCtx); err != nil {
			logger.Warn("dependency close error", zap.Error(err))
		}
	}()

	projectID := strings.TrimSpace(cfg.Firestore.ProjectID)
	middlewares := []func(http.Handler) http.Handler{
		observability.InjectLoggerMiddleware(logger.Named("http")),
		observability.TraceMiddleware(projectID),
		observability.RecoveryMiddleware(logger.Named("http")),
		observability.RequestLoggerMiddleware(projectID),
	}

	healthOpts := []handlers.HealthOption{
		handlers.WithHealthBuildInfo(buildInfoFromEnv(cfg, startedAt)),
	}
	if check := firestoreReadinessCheck(container); check != nil {
		healthOpts = append(healthOpts, handlers.WithHealthReadinessCheck("firestore", check))
	}
	healthHandlers := handlers.NewHealthHandlers(healthOpts...)

	svc := container.Services
	router := handlers.NewRouter(
		handlers.WithMiddlewares(middlewares...),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithProjectRoutes(handlers.NewProjectHandlers(svc.Catalog, svc.QnA).Routes),
		handlers.WithProductRoutes(handlers.NewProductHandlers(svc.Catalog, svc.Reviews,
			handlers.WithReviewSubmissionLimit(10, time.Minute)).Routes),
		handlers.WithCategoryRoutes(handlers.NewCategoryHandlers(svc.Catalog).Routes),
		handlers.WithFundingRoutes(handlers.NewFundingHandlers(svc.Fundings).Routes),
		handlers.WithPurchaseRoutes(handlers.NewPurchaseHandlers(svc.Purchases).Routes),
		handlers.WithQuestionRoutes(handlers.NewQuestionHandlers(svc.QnA,
			handlers.WithQuestionSubmissionLimit(10, time.Minute)).Routes),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("techfunding api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func buildInfoFromEnv(cfg config.Config, started time.Time) handlers.BuildInfo {
	version := strings.TrimSpace(os.Getenv("API_BUILD_VERSION"))
	if version == "" {
		version = "dev"
	}
	commit := strings.TrimSpace(os.Getenv("API_BUILD_COMMIT_SHA"))
	if commit == "" {
		commit = "unknown"
	}
	return handlers.BuildInfo{
		Version:     version,
		CommitSHA:   commit,
		Environment: cfg.Environment,
		StartedAt:   started,
	}
}

// firestoreReadinessCheck probes the backing Firestore project when one is
// configured. Memory-backed runs have no external dependency to verify.
func firestoreReadinessCheck(container *di.Container) handlers.ReadinessCheck {
	provider := container.FirestoreProvider()
	if provider == nil {
		return nil
	}
	return func(ctx context.Context) error {
		checkCtx, cancel := context.WithTimeout(ctx, 1500*time.Millisecond)
		defer cancel()

		client, err := provider.Client(checkCtx)
		if err != nil {
			return err
		}
		iter := client.Collections(checkCtx)
		if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
			return pfirestore.WrapError("healthz", err)
		}
		return nil
	}
}
