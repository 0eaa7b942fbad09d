package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/brewlytics/cupping/internal/aggregate"
	"github.com/brewlytics/cupping/internal/model"
	"github.com/brewlytics/cupping/internal/regress"
	"github.com/brewlytics/cupping/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the full analysis: summaries, correlations, models, plots",
		RunE:  runReport,
	}

	cmd.Flags().StringP("output", "o", ".", "directory for the generated plot PNGs")
	cmd.Flags().Bool("no-plots", false, "skip plot generation")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	outputDir, _ := cmd.Flags().GetString("output")
	noPlots, _ := cmd.Flags().GetBool("no-plots")

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	ratings, err := loadRatings(ctx, store)
	if err != nil {
		return err
	}

	formatter := report.NewCLIFormatter()

	summaries := aggregate.SummarizeByCountry(ratings)
	fmt.Fprintln(os.Stdout, formatter.FormatCountrySummary(summaries))

	shares := aggregate.SpeciesDistribution(ratings)
	fmt.Fprintln(os.Stdout, formatter.FormatSpeciesDistribution(shares))

	matrix, err := aggregate.Correlation(ratings, model.SensoryColumns)
	if err != nil {
		return fmt.Errorf("failed to compute correlations: %w", err)
	}
	fmt.Fprintln(os.Stdout, formatter.FormatCorrelation(matrix))

	fitModels(ratings, []regress.Spec{
		regress.FlavorAltitudeSpecies(),
		regress.FlavorMultiFactor(),
	})

	if noPlots {
		return nil
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	barPath := filepath.Join(outputDir, "countries.png")
	if err := report.SaveCountryBarChart(summaries, barPath); err != nil {
		return err
	}
	heatPath := filepath.Join(outputDir, "correlations.png")
	if err := report.SaveCorrelationHeatMap(matrix, heatPath); err != nil {
		return err
	}

	slog.Info("Saved plots", "bar_chart", barPath, "heat_map", heatPath)
	return nil
}
