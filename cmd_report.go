package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"laptop-dashboard/models"
	"laptop-dashboard/services"
)

var (
	reportNewOnly   bool
	reportJSON      bool
	reportScreenMin float64
	reportScreenMax float64
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard aggregates to the terminal",
	Long: `Computes the same aggregates as the visualizations view over the whole
dataset and prints them. --screen-min/--screen-max restrict the
"average price of new laptops by RAM size" section.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportNewOnly, "new-only", false, "restrict counts, histogram and year means to new listings")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print the report as JSON")
	reportCmd.Flags().Float64Var(&reportScreenMin, "screen-min", 0, "minimum screen size for the RAM price means")
	reportCmd.Flags().Float64Var(&reportScreenMax, "screen-max", 0, "maximum screen size for the RAM price means")
}

func runReport(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	var screen *models.Range
	if cmd.Flags().Changed("screen-min") || cmd.Flags().Changed("screen-max") {
		r := ds.ScreenBounds()
		if cmd.Flags().Changed("screen-min") {
			r.Min = reportScreenMin
		}
		if cmd.Flags().Changed("screen-max") {
			r.Max = reportScreenMax
		}
		screen = &r
	}

	report, err := services.NewInsightService(logger).Generate(ds.Listings(), services.InsightOptions{
		Bins:    cfg.HistogramBins,
		Screen:  screen,
		NewOnly: reportNewOnly,
	})
	if err != nil {
		return err
	}

	if reportJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	services.PrintInsightReport(os.Stdout, report)
	return nil
}
