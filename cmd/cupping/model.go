package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brewlytics/cupping/internal/common"
	"github.com/brewlytics/cupping/internal/model"
	"github.com/brewlytics/cupping/internal/regress"
	"github.com/brewlytics/cupping/internal/report"
)

func modelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Fit the reference OLS flavor models",
		Long: `Fit the two reference OLS models over the cleaned ratings:

  interaction  flavor ~ altitude_mean_meters * species
  additive     flavor ~ altitude + species + region + processing_method
               + acidity + balance + body

A failed fit is reported and the remaining fit still runs.`,
		RunE: runModel,
	}

	cmd.Flags().String("only", "", "fit a single model (interaction or additive)")

	return cmd
}

func runModel(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	only, _ := cmd.Flags().GetString("only")

	specs, err := selectSpecs(only)
	if err != nil {
		return err
	}

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

	fitModels(ratings, specs)
	return nil
}

func selectSpecs(only string) ([]regress.Spec, error) {
	switch only {
	case "":
		return []regress.Spec{regress.FlavorAltitudeSpecies(), regress.FlavorMultiFactor()}, nil
	case "interaction":
		return []regress.Spec{regress.FlavorAltitudeSpecies()}, nil
	case "additive":
		return []regress.Spec{regress.FlavorMultiFactor()}, nil
	default:
		return nil, fmt.Errorf("unknown model %q (want interaction or additive)", only)
	}
}

// fitModels runs each fit independently: a rank-deficient or underpowered
// fit is printed as a failure and the remaining fits still run.
func fitModels(ratings []model.Rating, specs []regress.Spec) {
	formatter := report.NewCLIFormatter()
	for _, spec := range specs {
		result, err := regress.Fit(ratings, spec)
		if err != nil {
			common.LogError(err, "Model fit failed", common.Fields{"model": spec.Name})
			fmt.Fprintln(os.Stdout, formatter.FormatModelError(spec.Name, err))
			continue
		}
		fmt.Fprintln(os.Stdout, formatter.FormatModel(result))
	}
}
