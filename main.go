package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"laptop-dashboard/config"
	"laptop-dashboard/models"
	"laptop-dashboard/services"
	"laptop-dashboard/storage"
	"laptop-dashboard/utils"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive dashboard over used-laptop marketplace listings",
	Long: `dashboard loads a cleaned listings dataset once and serves an explore view
(filter by brand, price range and screen size) and a visualizations view
(RAM counts, price histogram, mean price by RAM size and by release year).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger = utils.NewLogger(verbose || cfg.Verbose)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default $DASHBOARD_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, reportCmd, snapshotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("%v", err)
			logger.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// openSource returns the configured dataset backend.
func openSource(ctx context.Context) (storage.ListingSource, error) {
	switch cfg.DatasetSource {
	case config.SourcePostgres:
		retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: logger}
		return storage.NewPostgresSource(ctx, cfg.DSN(), cfg.Postgres.Table, retry)
	default:
		return storage.NewCSVSource(cfg.DatasetPath), nil
	}
}

// loadDataset reads and parses the whole dataset. Any failure is fatal for
// the calling command.
func loadDataset(ctx context.Context) (*models.Dataset, error) {
	src, err := openSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer src.Close()

	raw, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	logger.Info("[loader] Read %d rows from %s source", len(raw), cfg.DatasetSource)

	listings, err := services.NewCleaner(logger).Clean(raw)
	if err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	ds := models.NewDataset(listings)
	logger.Info("[loader] Dataset ready: %d listings, %d brands, price %s to %s",
		ds.Len(), len(ds.Brands()),
		services.FormatUSD(ds.PriceBounds().Min), services.FormatUSD(ds.PriceBounds().Max))
	return ds, nil
}
