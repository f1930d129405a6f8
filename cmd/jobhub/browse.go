package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/OctavioMinteguia/jobhub/internal/browse"
	"github.com/OctavioMinteguia/jobhub/internal/store"
)

var browseFlags queryFlags

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse search results interactively (TUI)",
	Long:  "Runs an aggregated search and opens the results in a scrolling list with a detail view.",
	RunE:  runBrowse,
}

func init() {
	browseFlags.register(browseCmd)
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sqlStore, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer sqlStore.Close()

	// Pull the largest page the aggregator allows; the TUI scrolls.
	limit := browseFlags.limit
	if limit == 0 {
		limit = 100
	}

	aggregator := buildAggregator(cfg, sqlStore, logger)
	result, err := aggregator.Search(cmd.Context(), browseFlags.query(), limit, browseFlags.offset)
	if err != nil {
		logger.Error("search failed", "error", err)
		os.Exit(1)
	}

	return browse.Run(result.Jobs)
}
