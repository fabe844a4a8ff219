package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/nfl-spreads/internal/config"
	"github.com/pfrederiksen/nfl-spreads/internal/dataset"
	"github.com/pfrederiksen/nfl-spreads/internal/fetch"
	"github.com/pfrederiksen/nfl-spreads/internal/logger"
	"github.com/pfrederiksen/nfl-spreads/internal/nfl"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	// ExitPartial means the dataset was written but some games could not
	// be fetched.
	ExitPartial = 2
)

var (
	flagYear        int
	flagWeek        string
	flagConfig      string
	flagOut         string
	flagTimeout     time.Duration
	flagConcurrency int
	flagVerbose     bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nfl-spreads",
		Short: "Build a CSV of NFL betting line movement joined with game results",
		Long: `Scrapes historical NFL point-spread and over/under line movement and
joins it with final game results into one home/away oriented CSV, one
row per published quote.`,
		SilenceUsage: true,
		RunE:         runFetch,
	}

	cmd.Flags().IntVar(&flagYear, "year", 0, "Season to fetch (0 = every season with data)")
	cmd.Flags().StringVar(&flagWeek, "week", "", "Limit to one week, e.g. 7 or super-bowl (requires --year)")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output CSV path (default stdout)")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Deadline for each season's fetch batch (0 = none)")
	cmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "Concurrent matchup fetches (0 = number of CPUs)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging and a metrics dump")

	return cmd
}

// runFetch is the main command logic
func runFetch(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	// Flags win over the config file, but only when actually set.
	if cmd.Flags().Changed("timeout") {
		cfg.Scrape.BatchTimeout = flagTimeout
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Scrape.Concurrency = flagConcurrency
	}

	years, week, err := resolveScope(cfg)
	if err != nil {
		return err
	}

	out := os.Stdout
	if flagOut != "" {
		f, err := os.Create(flagOut)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	opts := dataset.Options{
		Week:        week,
		Concurrency: cfg.Scrape.Concurrency,
		Timeout:     cfg.Scrape.BatchTimeout,
	}
	client := fetch.NewWith(cfg.Scrape.Timeout, cfg.Scrape.UserAgent)

	logger.Info("fetching seasons", logger.Fields{
		"years":       years,
		"concurrency": opts.Concurrency,
	})

	rows, failures, err := dataset.Seasons(context.Background(), client, years, opts)
	if err != nil {
		return err
	}

	if err := WriteCSV(out, rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}

	if flagVerbose {
		snapshot := logger.GetMetricsSnapshot()
		logger.Debug("run metrics", logger.Fields{"metrics": snapshot})
	}

	if len(failures) > 0 {
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "failed: %s\n", f)
		}
		fmt.Fprintf(os.Stderr, "%d of %d games missing from output\n",
			len(failures), len(failures)+countGames(rows))
		os.Exit(ExitPartial)
	}

	return nil
}

// resolveScope turns the year and week flags into the season list and
// optional week filter.
func resolveScope(cfg config.Config) ([]int, *nfl.Week, error) {
	var week *nfl.Week
	if flagWeek != "" {
		if flagYear == 0 {
			return nil, nil, fmt.Errorf("--week requires --year")
		}
		w, err := nfl.ParseWeek(flagWeek)
		if err != nil {
			return nil, nil, err
		}
		week = &w
	}

	if flagYear != 0 {
		if flagYear < cfg.Scrape.EarliestSeason {
			return nil, nil, fmt.Errorf("no data before the %d season, got --year %d",
				cfg.Scrape.EarliestSeason, flagYear)
		}
		return []int{flagYear}, week, nil
	}

	latest := nfl.LatestSeasonBefore(time.Now())
	years := make([]int, 0, latest-cfg.Scrape.EarliestSeason+1)
	for y := cfg.Scrape.EarliestSeason; y <= latest; y++ {
		years = append(years, y)
	}
	return years, week, nil
}

// countGames counts distinct games among the output rows; each game
// contributes many quote rows.
func countGames(rows []dataset.Row) int {
	type key struct {
		home, away string
		week       nfl.Week
		season     int
	}
	seen := make(map[key]bool)
	for _, r := range rows {
		seen[key{r.Home, r.Away, r.Week, r.Season}] = true
	}
	return len(seen)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
