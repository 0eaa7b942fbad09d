package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/brewlytics/cupping/internal/cleaner"
	"github.com/brewlytics/cupping/internal/common"
	"github.com/brewlytics/cupping/internal/loader"
	"github.com/brewlytics/cupping/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file-or-url>",
		Short: "Import the raw coffee-quality dataset",
		Long: `Import the raw 43-column coffee-quality CSV, clean it, and store the
resulting ratings locally for the analysis commands.

Cleaning keeps the 20 analysis columns, drops rows whose total cup points
are zero, nulls altitudes above 8000 m, derives days_to_expiration, and
canonicalizes country names.

Examples:
  # Import from a local file
  cupping import ~/Downloads/coffee_ratings.csv

  # Import straight from a URL
  cupping import https://example.com/coffee_ratings.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Clean and report counts without saving")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	source := args[0]
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	slog.Info("☕ Importing dataset...", "source", source, "dry_run", dryRun)

	var (
		raw *loader.RawTable
		err error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		raw, err = loader.FromURL(ctx, source)
	} else {
		raw, err = readFileWithProgress(source)
	}
	if err != nil {
		return err
	}

	ratings, stats, err := cleaner.Clean(raw)
	if err != nil {
		return common.NewUserError("Dataset cleaning failed", err)
	}

	slog.Info("Cleaned dataset",
		"rows_read", stats.RowsRead,
		"rows_kept", stats.RowsKept,
		"zero_score_rows_dropped", stats.ZeroScoreRows,
		"altitudes_nulled", stats.AltitudesNulled,
		"unparseable_date_pairs", stats.DatesUnparsed)

	if dryRun {
		slog.Info("Dry run complete, nothing saved")
		return nil
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	run := model.ImportRun{
		Source:      filepath.Base(source),
		RowsRead:    stats.RowsRead,
		RowsKept:    stats.RowsKept,
		RowsDropped: stats.ZeroScoreRows,
		ImportedAt:  time.Now(),
	}
	if err := store.SaveRatings(ctx, run, ratings); err != nil {
		return fmt.Errorf("failed to save ratings: %w", err)
	}

	slog.Info("Import complete", "ratings", len(ratings))
	return nil
}

// readFileWithProgress reads a local CSV while showing a byte-level
// progress bar.
func readFileWithProgress(path string) (*loader.RawTable, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat dataset %s: %w", path, err)
	}

	bar := progressbar.DefaultBytes(info.Size(), "Reading dataset")
	raw, err := loader.FromReader(io.TeeReader(f, bar))
	_ = bar.Finish()
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return raw, nil
}
