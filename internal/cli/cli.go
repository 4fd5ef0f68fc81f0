package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rockhound/boston-shows/internal/aggregator"
	"github.com/rockhound/boston-shows/internal/config"
	"github.com/rockhound/boston-shows/internal/event"
	"github.com/rockhound/boston-shows/internal/fetch"
	"github.com/rockhound/boston-shows/internal/logger"
	"github.com/rockhound/boston-shows/internal/venue"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig   string
	flagOutput   string
	flagMonths   int
	flagTimeout  time.Duration
	flagVenues   []string
	flagParallel bool
	flagPretty   bool
	flagVerbose  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boston-shows",
		Short: "Collect Boston concert listings into one JSON file",
		Long: `Fetches event listings from a fixed set of Boston-area venue websites,
normalizes them into a common schema (venue, bands, start, link, soldout),
and writes the combined list as a JSON array.

A venue that fails to fetch or parse is logged and skipped; the run still
succeeds with the remaining venues' records.`,
		SilenceUsage: true,
		RunE:         runCollect,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config file (or env: BOSTONSHOWS_CONFIG)")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Output file path (default: events.json)")
	cmd.Flags().IntVar(&flagMonths, "months", 0, "Months ahead to collect (default: 12)")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "HTTP timeout per request (default: 30s)")
	cmd.Flags().StringSliceVar(&flagVenues, "venues", nil, "Venue keys to collect (default: all)")
	cmd.Flags().BoolVar(&flagParallel, "parallel", false, "Fetch venues concurrently")
	cmd.Flags().BoolVar(&flagPretty, "pretty", false, "Indent the output JSON")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runCollect is the main command logic
func runCollect(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Flags set on the command line win over file and env values.
	if cmd.Flags().Changed("output") {
		cfg.Output = flagOutput
	}
	if cmd.Flags().Changed("months") {
		cfg.Months = flagMonths
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = flagTimeout
	}
	if cmd.Flags().Changed("venues") {
		cfg.Venues = flagVenues
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = flagParallel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client := fetch.New(cfg.Timeout)
	client.SetUserAgent(cfg.UserAgent)

	registry, err := buildRegistry(client, cfg.Venues)
	if err != nil {
		return err
	}

	window := venue.Window{
		Start:  time.Now().In(event.Eastern),
		Months: cfg.Months,
	}

	logger.Info("run starting", logger.Fields{
		"venues": len(registry.Handlers()),
		"months": cfg.Months,
		"output": cfg.Output,
	})

	events := aggregator.Run(cmd.Context(), registry.Handlers(), window, cfg.Parallel)

	// Individual venue failures are tolerated; only this write is fatal.
	if err := writeEvents(cfg.Output, events, flagPretty); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	logger.Info("run complete", logger.CountSnapshot())
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
