// Package service defines the interfaces the commands program against.
package service

import (
	"context"

	"github.com/brewlytics/cupping/internal/model"
)

// RatingStore persists cleaned ratings between the import step and the
// analysis commands.
type RatingStore interface {
	// Migrate brings the underlying schema up to date.
	Migrate(ctx context.Context) error

	// SaveRatings replaces the stored dataset with the given cleaned rows
	// and records the import run.
	SaveRatings(ctx context.Context, run model.ImportRun, ratings []model.Rating) error

	// GetRatings returns every stored rating in insertion order.
	GetRatings(ctx context.Context) ([]model.Rating, error)

	// ListImportRuns returns past imports, most recent first.
	ListImportRuns(ctx context.Context) ([]model.ImportRun, error)

	Close() error
}
