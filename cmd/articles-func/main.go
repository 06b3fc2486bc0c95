package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/config"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/function"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/logger"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/storage"
)

func main() {
	cfg, err := config.Load("config")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	// The pool outlives a single invocation; the runtime freezes the process
	// between events and connections are reused across warm invocations.
	db, err := storage.NewDB(context.Background(), cfg.Database.URL, cfg.Database.PoolMin, cfg.Database.PoolMax, cfg.Database.ConnectTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	h := function.NewArticlesHandler(storage.New(db.Pool), log)
	lambda.Start(h.Handle)
}
