package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/viamunicipal/potholes-backend/internal/adapter/gcs"
	"github.com/viamunicipal/potholes-backend/internal/adapter/postgres"
	"github.com/viamunicipal/potholes-backend/internal/adapter/postgres/record"
	"github.com/viamunicipal/potholes-backend/internal/adapter/postgres/user"
	"github.com/viamunicipal/potholes-backend/internal/adapter/sheets"
	jwtauth "github.com/viamunicipal/potholes-backend/internal/auth"
	"github.com/viamunicipal/potholes-backend/internal/config"
	authsvc "github.com/viamunicipal/potholes-backend/internal/service/auth"
	"github.com/viamunicipal/potholes-backend/internal/service/refcatalog"
	"github.com/viamunicipal/potholes-backend/internal/service/report"
	"github.com/viamunicipal/potholes-backend/internal/service/submission"
	"github.com/viamunicipal/potholes-backend/internal/transport/middleware"
	"github.com/viamunicipal/potholes-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects the
// adapters, assembles the services and HTTP transport, and serves until the
// context is cancelled. Shutdown drains in-flight requests within
// ServerConfig.ShutdownTimeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("app.Run connect database: %w", err)
	}
	defer pool.Close()

	photos, err := gcs.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("app.Run connect blob storage: %w", err)
	}
	defer photos.Close()

	catalog, err := sheets.New(ctx, cfg.Catalog, cfg.Storage.CredentialsJSON)
	if err != nil {
		return fmt.Errorf("app.Run connect catalog spreadsheet: %w", err)
	}

	recordRepo := record.New(pool)
	userRepo := user.New(pool)
	txManager := postgres.NewTxManager(pool)

	jwtManager := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, userRepo, jwtManager, cfg.Auth)
	submissionService := submission.NewService(logger, recordRepo, txManager, photos, cfg.Report)
	reportService := report.NewService(logger, recordRepo, txManager, photos, cfg.Report)
	catalogService := refcatalog.NewService(logger, catalog, cfg.Catalog)

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Auth:           rest.NewAuthHandler(authService, logger),
		Report:         rest.NewReportHandler(submissionService, reportService, logger, maxUploadBytes(cfg.Report)),
		Catalog:        rest.NewCatalogHandler(catalogService, logger),
		Health:         rest.NewHealthHandler(pool, BuildVersion()),
		Validator:      authService,
		Limiter:        limiter,
		Logger:         logger,
		CORS:           cfg.CORS,
		AuthRatePerMin: cfg.Server.AuthRatePerMin,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app.Run serve: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app.Run shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// maxUploadBytes bounds a multipart request body: every photo at the
// configured size cap plus headroom for the form framing.
func maxUploadBytes(cfg config.ReportConfig) int64 {
	return int64(cfg.MaxPhotos)*int64(cfg.MaxPhotoSizeMB)<<20 + 1<<20
}
