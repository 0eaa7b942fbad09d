package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brewlytics/cupping/internal/report"
)

func importsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "imports",
		Short: "List past dataset imports",
		RunE:  runImports,
	}
}

func runImports(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	runs, err := store.ListImportRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list import runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No imports recorded yet. Run 'cupping import' first.")
		return nil
	}

	formatter := report.NewCLIFormatter()
	fmt.Fprintln(os.Stdout, formatter.FormatImportRuns(runs))
	return nil
}
