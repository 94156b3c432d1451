package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/invertedv/regionstats/pipeline"
	"github.com/invertedv/regionstats/timeseries"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "regionstats",
		Short: "Regional statistics analyzer",
		Long: `Regionstats merges regional population, income and home sale-price
exports into one combined table per region with ranks, an affordability
ratio and summary blurbs, and runs growth analysis over the sale-price
history.`,
		Version: version,
	}

	rootCmd.AddCommand(processCmd())
	rootCmd.AddCommand(analyzeTimeseriesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// Internal processing errors are logged, not propagated: both commands
// exit zero after printing a run summary.

func processCmd() *cobra.Command {
	var inputDir, outputDir string

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process the input files and generate the combined table",
		RunE: func(cmd *cobra.Command, args []string) error {
			lg := newLogger()

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				lg.Error("cannot create output directory", "err", err)
				return nil
			}

			fmt.Println("Data Analyzer")
			fmt.Printf("Input directory: %s\n", inputDir)
			fmt.Printf("Output directory: %s\n", outputDir)

			combined, err := pipeline.New(lg).Run(inputDir, outputDir)
			if err != nil {
				lg.Error("error during processing", "err", err)
				fmt.Printf("Error during processing: %v\n", err)
				return nil
			}

			fmt.Println()
			fmt.Printf("Output File:   %s\n", pipeline.OutputName)
			fmt.Printf("Total Rows:    %d\n", combined.Len())
			fmt.Printf("Total Columns: %d\n", len(pipeline.OutputColumns))
			fmt.Println("Processing completed successfully!")

			return nil
		},
	}

	cmd.Flags().StringVar(&inputDir, "input-dir", "data/input",
		"Directory containing input CSV files")
	cmd.Flags().StringVar(&outputDir, "output-dir", "data/output",
		"Directory to save output CSV files")

	return cmd
}

func analyzeTimeseriesCmd() *cobra.Command {
	var inputDir, outputDir string

	cmd := &cobra.Command{
		Use:   "analyze-timeseries",
		Short: "Run time-series growth analysis on the sale-price history",
		RunE: func(cmd *cobra.Command, args []string) error {
			lg := newLogger()

			fmt.Println("Time Series Analysis")
			fmt.Printf("Input directory: %s\n", inputDir)
			fmt.Printf("Output directory: %s\n", outputDir)

			sm, err := timeseries.NewAnalyzer(lg).Run(inputDir, outputDir)
			if err != nil {
				lg.Error("error during time series analysis", "err", err)
				fmt.Printf("Error during time series analysis: %v\n", err)
				return nil
			}

			fmt.Println()
			fmt.Printf("Time Period:            %s to %s\n", sm.PeriodStart, sm.PeriodEnd)
			fmt.Printf("Number of Regions:      %d\n", sm.Regions)
			fmt.Printf("Average Price (Latest): $%s\n", commas(sm.AvgLatest))
			fmt.Printf("Maximum Price (Latest): $%s\n", commas(sm.MaxLatest))
			fmt.Printf("Minimum Price (Latest): $%s\n", commas(sm.MinLatest))
			fmt.Println("Time series analysis completed successfully!")

			return nil
		},
	}

	cmd.Flags().StringVar(&inputDir, "input-dir", "data/input",
		"Directory containing input CSV files")
	cmd.Flags().StringVar(&outputDir, "output-dir", "data/output/time_series",
		"Directory to save time series analysis results")

	return cmd
}

func commas(x float64) string {
	return humanize.Comma(int64(math.Round(x)))
}
