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
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/tmarsden/mailledger/internal/adapter/driven/console"
	gmailadapter "github.com/tmarsden/mailledger/internal/adapter/driven/gmail"
	sqliteadapter "github.com/tmarsden/mailledger/internal/adapter/driven/sqlite"
	"github.com/tmarsden/mailledger/internal/adapter/driven/tokenfile"
	httphandler "github.com/tmarsden/mailledger/internal/adapter/driving/http"
	"github.com/tmarsden/mailledger/internal/application"
	"github.com/tmarsden/mailledger/internal/config"
	"github.com/tmarsden/mailledger/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"fetch_limit", cfg.FetchLimit,
		"ingest_enabled", cfg.IngestEnabled,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode). A connection
	// failure here is fatal; the process exits non-zero.
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on the writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire the record store shared by the HTTP surface and the pipeline.
	recordStore := sqliteadapter.NewRecordRepo(db)

	// 6. Create HTTP handler and server. The API is available immediately,
	// independent of the ingestion run.
	handler := httphandler.NewServeMux(httphandler.NewHandler(recordStore, slog.Default()), slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	// 7. Kick off the one-shot ingestion run. When no cached credential
	// exists this blocks on the operator typing the authorization code, so
	// it must not hold up the HTTP surface.
	if cfg.IngestEnabled {
		go func() {
			if err := ingestOnce(ctx, cfg, recordStore); err != nil {
				slog.Error("ingest run failed", "error", err)
			}
		}()
	} else {
		slog.Info("ingestion disabled")
	}

	slog.Info("mailledger started", "listen_addr", cfg.ListenAddr)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 9. Graceful shutdown with timeout for HTTP server drain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// ingestOnce walks the one-shot ingestion: authorize against the mailbox
// provider (interactively when no cached credential exists), then fetch,
// parse, filter and persist recent notification emails.
func ingestOnce(ctx context.Context, cfg *config.Config, records driven.RecordStore) error {
	oauthCfg, err := gmailadapter.LoadOAuthConfig(cfg.CredentialsPath)
	if err != nil {
		return err
	}

	authSvc := application.NewAuthService(
		tokenfile.New(cfg.TokenPath),
		gmailadapter.NewExchanger(oauthCfg),
		console.NewPrompter(os.Stdin, os.Stdout),
		slog.Default(),
	)

	cred, err := authSvc.Authorize(ctx)
	if err != nil {
		return fmt.Errorf("authorize mailbox: %w", err)
	}

	mailbox, err := gmailadapter.NewClient(ctx, oauthCfg, cred)
	if err != nil {
		return err
	}

	ingestSvc := application.NewIngestService(mailbox, records, cfg.FetchLimit, slog.Default())
	return ingestSvc.Run(ctx)
}
