package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlytics/cupping/internal/aggregate"
	"github.com/brewlytics/cupping/internal/model"
)

func TestSaveCountryBarChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.png")

	summaries := []aggregate.CountrySummary{
		{Country: "Mexico", Count: 236, MeanFlavor: 7.4},
		{Country: "Colombia", Count: 183, MeanFlavor: 7.6},
		{Country: "Guatemala", Count: 181, MeanFlavor: 7.5},
	}

	require.NoError(t, SaveCountryBarChart(summaries, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSaveCorrelationHeatMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "correlations.png")

	ratings := []model.Rating{
		{Aroma: 7.0, Flavor: 7.1},
		{Aroma: 7.5, Flavor: 7.6},
		{Aroma: 8.0, Flavor: 8.2},
	}
	matrix, err := aggregate.Correlation(ratings, []string{model.ColAroma, model.ColFlavor})
	require.NoError(t, err)

	require.NoError(t, SaveCorrelationHeatMap(matrix, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
