package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OctavioMinteguia/jobhub/internal/search"
	"github.com/OctavioMinteguia/jobhub/internal/store"
)

// queryFlags holds the shared search/browse flag set.
type queryFlags struct {
	text     string
	company  string
	location string
	jobType  string
	level    string
	remote   string
	source   string
	limit    int
	offset   int
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.text, "query", "q", "", "free-text search terms")
	cmd.Flags().StringVar(&f.company, "company", "", "exact company filter")
	cmd.Flags().StringVar(&f.location, "location", "", "exact location filter")
	cmd.Flags().StringVar(&f.jobType, "type", "", "job type filter (full-time, part-time, contract, internship)")
	cmd.Flags().StringVar(&f.level, "level", "", "level filter (junior, mid, senior)")
	cmd.Flags().StringVar(&f.remote, "remote", "", "remote filter (true/false)")
	cmd.Flags().StringVar(&f.source, "source", "", "source scope (internal/external)")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "page size (1-100, default 50)")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "page offset")
}

func (f *queryFlags) query() search.Query {
	return search.Query{
		Text:     f.text,
		Company:  f.company,
		Location: f.location,
		Type:     f.jobType,
		Level:    f.level,
		Remote:   search.RemoteFlag(f.remote),
		Source:   f.source,
	}
}

var searchFlags queryFlags

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run an aggregated search and print the results",
	Long:  "Fetches from the store and all configured external feeds, then prints the merged results as a table.",
	RunE:  runSearch,
}

func init() {
	searchFlags.register(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	aggregator := buildAggregator(cfg, sqlStore, logger)
	result, err := aggregator.Search(cmd.Context(), searchFlags.query(), searchFlags.limit, searchFlags.offset)
	if err != nil {
		logger.Error("search failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%-35s %-20s %-18s %-11s %-7s %s\n", "Title", "Company", "Location", "Type", "Level", "Source")
	fmt.Println(strings.Repeat("─", 100))
	for _, j := range result.Jobs {
		fmt.Printf("%-35s %-20s %-18s %-11s %-7s %s\n",
			truncate(j.Title, 34), truncate(j.Company, 19), truncate(j.Location, 17),
			j.Type, j.Level, j.Source)
	}
	fmt.Printf("\nShowing %d of %d jobs (offset %d", len(result.Jobs), result.Total, result.Offset)
	if result.HasMore {
		fmt.Print(", more available")
	}
	fmt.Println(")")
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
