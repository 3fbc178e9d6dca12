package main

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/risinglab/jewelpanel/internal/adapter/driven/catalogapi"
	"github.com/risinglab/jewelpanel/internal/adapter/driven/memory"
	"github.com/risinglab/jewelpanel/internal/adapter/driven/s3store"
	sqliteadapter "github.com/risinglab/jewelpanel/internal/adapter/driven/sqlite"
	httphandler "github.com/risinglab/jewelpanel/internal/adapter/driving/http"
	webhandler "github.com/risinglab/jewelpanel/internal/adapter/driving/web"
	"github.com/risinglab/jewelpanel/internal/application"
	"github.com/risinglab/jewelpanel/internal/config"
	"github.com/risinglab/jewelpanel/internal/domain/port/driven"
)

const (
	revocationPurgeInterval = time.Hour
	workspaceSweepInterval  = 5 * time.Minute
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	if err := config.LoadEnvFile(".env"); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"app_url", cfg.AppURL,
		"catalog_api_url", cfg.CatalogAPIURL,
		"attachments", attachmentBackend(cfg),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	version, err := sqliteadapter.RunMigrations(db.Writer)
	if err != nil {
		return err
	}
	slog.Info("migrations complete", "schema_version", version)

	// 5. Wire adapters.
	revocations := sqliteadapter.NewRevocationRepo(db)
	mutationLog := sqliteadapter.NewMutationLogRepo(db)

	users, err := memory.NewUserStore(memory.SeedUsers, bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	attachments, err := newAttachmentStore(ctx, cfg)
	if err != nil {
		return err
	}

	catalog, err := catalogapi.NewClient(cfg.CatalogAPIURL, cfg.CatalogAPIToken, slog.Default())
	if err != nil {
		return err
	}

	// 6. Create application services.
	secret := cfg.SessionSecret
	if secret == nil {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return err
		}
		slog.Warn("JEWELPANEL_SESSION_SECRET not set, using an ephemeral secret; sessions end on restart")
	}

	metrics := httphandler.NewMetrics()
	categories := application.NewCategoryService(catalog, cfg.CategoryParentID, slog.Default())
	dialogs := application.NewDialogServices(catalog, categories, attachments, mutationLog, metrics, slog.Default())
	authSvc := application.NewAuthService(users, revocations, secret, cfg.SessionTTL, cfg.AppURL, slog.Default())
	workspaces := application.NewWorkspaces(dialogs, authSvc, cfg.AppURL, cfg.SignOutDelay)

	go authSvc.StartPurge(ctx, revocationPurgeInterval)
	go workspaces.StartSweep(ctx, workspaceSweepInterval)

	// 7. Create HTTP handler and register API routes.
	apiHandler := httphandler.NewHandler(categories, mutationLog, authSvc, slog.Default())
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, apiHandler, metrics)

	// 8. Create web handler and register GUI routes.
	webHandler := webhandler.NewHandler(authSvc, workspaces, catalog, mutationLog, cfg.SecureCookies(), slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(mux, slog.Default(), metrics)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("jewelpanel started", "listen_addr", cfg.ListenAddr)

	// 9. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 10. Graceful shutdown with 10s timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func newAttachmentStore(ctx context.Context, cfg *config.Config) (driven.AttachmentStore, error) {
	if !cfg.UsesS3() {
		return memory.NewAttachmentStore(), nil
	}
	store, err := s3store.New(ctx, s3store.Options{
		Bucket:       cfg.AttachmentBucket,
		Prefix:       "staging/",
		Region:       cfg.S3Region,
		Endpoint:     cfg.S3Endpoint,
		UsePathStyle: cfg.S3UsePathStyle,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func attachmentBackend(cfg *config.Config) string {
	if cfg.UsesS3() {
		return "s3://" + cfg.AttachmentBucket
	}
	return "memory"
}
