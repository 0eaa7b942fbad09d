package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brewlytics/cupping/internal/aggregate"
	"github.com/brewlytics/cupping/internal/report"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show per-country counts, mean flavor, and the species breakdown",
		RunE:  runSummary,
	}
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

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
	shares := aggregate.SpeciesDistribution(ratings)

	fmt.Fprintln(os.Stdout, formatter.FormatCountrySummary(summaries))
	fmt.Fprintln(os.Stdout, formatter.FormatSpeciesDistribution(shares))
	return nil
}
