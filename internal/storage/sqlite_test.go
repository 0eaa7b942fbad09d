package storage

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlytics/cupping/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func sampleRun() model.ImportRun {
	return model.ImportRun{
		Source:      "coffee_ratings.csv",
		RowsRead:    3,
		RowsKept:    2,
		RowsDropped: 1,
		ImportedAt:  time.Now(),
	}
}

func TestSaveAndGetRatings(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	days := 365
	ratings := []model.Rating{
		{
			Species:            model.SpeciesArabica,
			CountryOfOrigin:    "Ethiopia",
			Region:             "Sub-Saharan Africa",
			GradingDate:        time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC),
			ExpirationDate:     time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC),
			DaysToExpiration:   &days,
			Flavor:             8.83,
			Aroma:              8.67,
			AltitudeMeanMeters: 2075,
			TotalCupPoints:     90.58,
			ProcessingMethod:   "Washed / Wet",
		},
		{
			Species:            model.SpeciesRobusta,
			CountryOfOrigin:    "Vietnam",
			Flavor:             7.5,
			Aroma:              math.NaN(),
			AltitudeMeanMeters: math.NaN(),
			TotalCupPoints:     80.0,
		},
	}

	require.NoError(t, store.SaveRatings(ctx, sampleRun(), ratings))

	got, err := store.GetRatings(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Ethiopia", got[0].CountryOfOrigin)
	assert.Equal(t, "Sub-Saharan Africa", got[0].Region)
	require.NotNil(t, got[0].DaysToExpiration)
	assert.Equal(t, 365, *got[0].DaysToExpiration)
	assert.InDelta(t, 8.83, got[0].Flavor, 1e-12)
	assert.True(t, got[0].GradingDate.Equal(ratings[0].GradingDate))

	// NaN round-trips through NULL.
	assert.True(t, math.IsNaN(got[1].Aroma))
	assert.True(t, math.IsNaN(got[1].AltitudeMeanMeters))
	assert.Nil(t, got[1].DaysToExpiration)
	assert.Empty(t, got[1].Region)
	assert.True(t, got[1].GradingDate.IsZero())
}

func TestSaveRatings_ReplacesPreviousImport(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	first := []model.Rating{{Species: model.SpeciesArabica, Flavor: 8, TotalCupPoints: 85}}
	second := []model.Rating{
		{Species: model.SpeciesRobusta, Flavor: 7, TotalCupPoints: 80},
		{Species: model.SpeciesRobusta, Flavor: 7.2, TotalCupPoints: 81},
	}

	require.NoError(t, store.SaveRatings(ctx, sampleRun(), first))
	require.NoError(t, store.SaveRatings(ctx, sampleRun(), second))

	got, err := store.GetRatings(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, model.SpeciesRobusta, got[0].Species)
}

func TestListImportRuns(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRatings(ctx, sampleRun(), []model.Rating{{Flavor: 8}}))
	require.NoError(t, store.SaveRatings(ctx, sampleRun(), []model.Rating{{Flavor: 8}}))

	runs, err := store.ListImportRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "coffee_ratings.csv", runs[0].Source)
	assert.Equal(t, 3, runs[0].RowsRead)
	assert.Equal(t, 2, runs[0].RowsKept)
	assert.False(t, runs[0].ImportedAt.IsZero())
}

func TestSaveRatings_Validation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	err := store.SaveRatings(ctx, sampleRun(), nil)
	require.ErrorIs(t, err, ErrNilSlice)

	run := sampleRun()
	run.Source = ""
	err = store.SaveRatings(ctx, run, []model.Rating{{Flavor: 8}})
	require.ErrorIs(t, err, ErrEmptyString)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	require.ErrorIs(t, err, ErrEmptyString)
}
