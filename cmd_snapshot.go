package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"laptop-dashboard/snapshot"
)

var (
	snapshotURL   string
	snapshotQuery string
	snapshotOut   string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture PNG screenshots of a running dashboard",
	Long: `Opens the explore and visualizations pages of a running dashboard in a
headless Chrome and saves a full-page screenshot of each.

Example:
  dashboard snapshot --url http://localhost:8501 --query "brand=Dell&screen=14-16"`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotURL, "url", "", "dashboard base URL (overrides SNAPSHOT_BASE_URL)")
	snapshotCmd.Flags().StringVar(&snapshotQuery, "query", "", "filter query string applied to every page")
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "", "output directory (overrides SNAPSHOT_OUTPUT_DIR)")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	scfg := cfg.Snapshot
	if snapshotURL != "" {
		scfg.BaseURL = snapshotURL
	}
	if snapshotOut != "" {
		scfg.OutputDir = snapshotOut
	}

	results, err := snapshot.New(scfg, cfg.MaxRetries, logger).Capture(cmd.Context(), snapshot.DefaultPages(snapshotQuery))
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("snapshot: %d of %d pages failed", failed, len(results))
	}
	return nil
}
