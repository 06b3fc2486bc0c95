package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/api"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/assets"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/config"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/function"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/guide"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/logger"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/mailer"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/storage"
)

func main() {
	// Load configuration from the "config" directory.
	cfg, err := config.Load("config")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured JSON logger.
	log := logger.New(cfg.Logging.Level)
	log.Info().Msg("starting consultation backend")

	// Initialize database connection pool.
	ctx := context.Background()
	db, err := storage.NewDB(ctx, cfg.Database.URL, cfg.Database.PoolMin, cfg.Database.PoolMax, cfg.Database.ConnectTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	queries := storage.New(db.Pool)

	// Wire the contact-form send path: preview fetcher, guide builder, mailer.
	fetcher := assets.NewFetcher(cfg.Assets.PreviewURL, cfg.Assets.FetchTimeout)
	mail := mailer.New(mailer.Config{
		SenderAddress:   cfg.Mail.SenderAddress,
		OperatorAddress: cfg.Mail.OperatorAddress,
		RelayHost:       cfg.Mail.RelayHost,
		RelayPort:       cfg.Mail.RelayPort,
		Password:        cfg.Mail.Password,
	}, fetcher, guide.Build, log)

	contact := function.NewContactHandler(mail, cfg.Mail.Password, log)
	articles := function.NewArticlesHandler(queries, log)

	router := api.NewRouter(contact.Handle, articles.Handle, db, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Serve in a goroutine.
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal for graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("HTTP server stopped")
}
