package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/brewlytics/cupping/internal/common"
	"github.com/brewlytics/cupping/internal/config"
	"github.com/brewlytics/cupping/internal/model"
	"github.com/brewlytics/cupping/internal/service"
	"github.com/brewlytics/cupping/internal/storage"
)

// openStorage opens and migrates the ratings database configured via
// --db / config / CUPPING_DATABASE_PATH.
func openStorage(ctx context.Context) (service.RatingStore, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if dbPath == "" {
		var err error
		dbPath, err = config.DefaultDatabasePath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage at %s: %w", dbPath, err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate storage: %w", err)
	}

	return store, nil
}

// loadRatings reads the stored dataset, failing with a friendly error when
// nothing has been imported yet.
func loadRatings(ctx context.Context, store service.RatingStore) ([]model.Rating, error) {
	ratings, err := store.GetRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}
	if len(ratings) == 0 {
		return nil, common.ErrNoRatings
	}
	return ratings, nil
}
