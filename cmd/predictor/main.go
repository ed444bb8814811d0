package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hoopcast/hoopcast/internal/pkg/config"
	"github.com/hoopcast/hoopcast/internal/pkg/logging"
	"github.com/hoopcast/hoopcast/internal/predictor"
	_ "github.com/hoopcast/hoopcast/internal/sources/all"
)

const defaultConfigPath = "configs/production.yaml"

func main() {
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	var (
		configPath = flag.String("config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
		dateArg    = flag.String("date", "", "Slate date as YYYYMMDD (default: tomorrow)")
		sourcesArg = flag.String("sources", "", "Comma-separated source names, overrides sources.enabled")
	)
	flag.Parse()

	if err := run(*configPath, *dateArg, *sourcesArg); err != nil {
		log.Fatalf("predictor: %v", err)
	}
}

func run(configPath, dateArg, sourcesArg string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logging.Setup(&cfg.Logging, "predictor"); err != nil {
		log.Printf("Warning: failed to setup logging: %v, continuing with default logger", err)
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.Telegram.BotToken = token
		slog.Info("Using Telegram bot token from environment")
	}
	if key := os.Getenv("KENPOM_API_KEY"); key != "" {
		cfg.Kenpom.APIKey = key
		slog.Info("Using Kenpom API key from environment")
	}
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		cfg.Postgres.DSN = dsn
		slog.Info("Using PostgreSQL DSN from environment")
	}
	if sourcesArg != "" {
		cfg.Sources.Enabled = strings.Split(sourcesArg, ",")
	}

	date := time.Now().AddDate(0, 0, 1)
	if dateArg != "" {
		date, err = time.Parse("20060102", dateArg)
		if err != nil {
			return fmt.Errorf("parse -date %q: %w", dateArg, err)
		}
	}

	runner, err := predictor.NewRunner(cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, stopping...")
		cancel()
	}()

	slog.Info("Starting prediction run", "date", date.Format("2006-01-02"))
	report, err := runner.Run(ctx, date)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d consensus predictions for %s to %s\n",
		len(report.Consensus), report.Date.Format("2006-01-02"), report.ReportPath)
	return nil
}
