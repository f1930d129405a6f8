package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/OctavioMinteguia/jobhub/internal/aggregate"
	"github.com/OctavioMinteguia/jobhub/internal/config"
	"github.com/OctavioMinteguia/jobhub/internal/mailer"
	"github.com/OctavioMinteguia/jobhub/internal/model"
	"github.com/OctavioMinteguia/jobhub/internal/source"
	"github.com/OctavioMinteguia/jobhub/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobhub",
	Short: "Job-board aggregation service",
	Long:  "jobhub aggregates internal postings with external job feeds and matches new jobs against subscriber alerts.",
	// Default to `serve` so that `jobhub` with no args runs the API daemon.
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBHUB_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBHUB_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBHUB_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupMailer(cfg *config.Config, logger *slog.Logger) model.Mailer {
	switch cfg.Mail.Type {
	case "smtp":
		logger.Info("using smtp mailer", "addr", cfg.Mail.SMTPAddr)
		return mailer.NewSMTPMailer(cfg.Mail.SMTPAddr, cfg.Mail.From)
	default:
		return mailer.NewLogMailer(logger)
	}
}

// buildSources wires one retrying HTTP source per enabled feed.
func buildSources(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) []model.Source {
	var sources []model.Source
	for _, sc := range cfg.Sources {
		if !sc.Enabled {
			continue
		}
		var src model.Source = source.NewHTTPSource(sc.Name, sc.URL, httpClient)
		src = source.NewRetrySource(src, 2, 500*time.Millisecond, logger)
		sources = append(sources, src)
		logger.Info("registered external source", "name", sc.Name, "url", sc.URL)
	}
	return sources
}

func buildAggregator(cfg *config.Config, st *store.SQLiteStore, logger *slog.Logger) *aggregate.Aggregator {
	httpClient := &http.Client{Timeout: cfg.SourceTimeout}
	sources := buildSources(cfg, httpClient, logger)
	return aggregate.New(st, sources, cfg.SourceTimeout, logger)
}
