package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/brewlytics/cupping/internal/aggregate"
	"github.com/brewlytics/cupping/internal/model"
	"github.com/brewlytics/cupping/internal/report"
)

func correlateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correlate",
		Short: "Compute pairwise correlations over the sensory sub-scores",
		Long: `Compute the pairwise Pearson correlation matrix over the ten continuous
sensory sub-scores. Each cell uses the rows where both of its columns are
present, so a missing altitude never shrinks the sample for a flavor/aroma
pair.`,
		RunE: runCorrelate,
	}

	cmd.Flags().String("heatmap", "", "also save a heat-map PNG to this path")

	return cmd
}

func runCorrelate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	heatmapPath, _ := cmd.Flags().GetString("heatmap")

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

	matrix, err := aggregate.Correlation(ratings, model.SensoryColumns)
	if err != nil {
		return fmt.Errorf("failed to compute correlations: %w", err)
	}

	formatter := report.NewCLIFormatter()
	fmt.Fprintln(os.Stdout, formatter.FormatCorrelation(matrix))

	if heatmapPath != "" {
		if err := report.SaveCorrelationHeatMap(matrix, heatmapPath); err != nil {
			return err
		}
		slog.Info("Saved correlation heat map", "path", heatmapPath)
	}
	return nil
}
