package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/assets"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/config"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/function"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/guide"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/logger"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/mailer"
)

func main() {
	// Function runtimes carry no config file; Load falls back to defaults
	// plus SMTP_PASSWORD and SITE_* environment overrides.
	cfg, err := config.Load("config")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	fetcher := assets.NewFetcher(cfg.Assets.PreviewURL, cfg.Assets.FetchTimeout)
	mail := mailer.New(mailer.Config{
		SenderAddress:   cfg.Mail.SenderAddress,
		OperatorAddress: cfg.Mail.OperatorAddress,
		RelayHost:       cfg.Mail.RelayHost,
		RelayPort:       cfg.Mail.RelayPort,
		Password:        cfg.Mail.Password,
	}, fetcher, guide.Build, log)

	h := function.NewContactHandler(mail, cfg.Mail.Password, log)
	lambda.Start(h.Handle)
}
