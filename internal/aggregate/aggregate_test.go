package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlytics/cupping/internal/model"
)

func rating(country, species string, flavor float64) model.Rating {
	return model.Rating{
		CountryOfOrigin: country,
		Species:         species,
		Flavor:          flavor,
	}
}

func TestSummarizeByCountry(t *testing.T) {
	ratings := []model.Rating{
		rating("Ethiopia", model.SpeciesArabica, 8.5),
		rating("Ethiopia", model.SpeciesArabica, 8.0),
		rating("Brazil", model.SpeciesArabica, 7.5),
		rating("", model.SpeciesArabica, 9.0), // null country excluded
	}

	summaries := SummarizeByCountry(ratings)
	require.Len(t, summaries, 2)

	// Sorted by count descending.
	assert.Equal(t, "Ethiopia", summaries[0].Country)
	assert.Equal(t, 2, summaries[0].Count)
	assert.InDelta(t, 8.25, summaries[0].MeanFlavor, 1e-12)

	assert.Equal(t, "Brazil", summaries[1].Country)
	assert.Equal(t, 1, summaries[1].Count)

	// Counts sum to the number of non-null-country rows exactly.
	total := 0
	for _, s := range summaries {
		total += s.Count
	}
	assert.Equal(t, 3, total)
}

func TestSummarizeByCountry_MeanIgnoresNullFlavor(t *testing.T) {
	ratings := []model.Rating{
		rating("Kenya", model.SpeciesArabica, 8.0),
		rating("Kenya", model.SpeciesArabica, math.NaN()),
	}

	summaries := SummarizeByCountry(ratings)
	require.Len(t, summaries, 1)

	// The null flavor is ignored, not propagated into the group mean.
	assert.Equal(t, 2, summaries[0].Count)
	assert.InDelta(t, 8.0, summaries[0].MeanFlavor, 1e-12)
}

func TestSpeciesDistribution_SumsToHundred(t *testing.T) {
	ratings := []model.Rating{
		rating("Brazil", model.SpeciesArabica, 8),
		rating("Brazil", model.SpeciesArabica, 8),
		rating("Vietnam", model.SpeciesRobusta, 7),
	}

	shares := SpeciesDistribution(ratings)
	require.Len(t, shares, 2)

	assert.Equal(t, model.SpeciesArabica, shares[0].Species)
	assert.Equal(t, 2, shares[0].Count)

	sum := 0.0
	for _, s := range shares {
		sum += s.Percent
	}
	assert.InDelta(t, 100.0, sum, 1e-6)
}

func TestCorrelation_SymmetricWithUnitDiagonal(t *testing.T) {
	ratings := []model.Rating{
		{Aroma: 7.0, Flavor: 7.1, Acidity: 7.3},
		{Aroma: 7.5, Flavor: 7.6, Acidity: 7.2},
		{Aroma: 8.0, Flavor: 8.2, Acidity: 7.9},
		{Aroma: 8.5, Flavor: 8.4, Acidity: 8.1},
	}

	m, err := Correlation(ratings, []string{model.ColAroma, model.ColFlavor, model.ColAcidity})
	require.NoError(t, err)

	for i := range m.Columns {
		assert.InDelta(t, 1.0, m.At(i, i), 1e-12)
		for j := range m.Columns {
			assert.InDelta(t, m.At(i, j), m.At(j, i), 1e-12)
			assert.LessOrEqual(t, math.Abs(m.At(i, j)), 1.0+1e-12)
		}
	}
}

func TestCorrelation_PairwiseComplete(t *testing.T) {
	// The third row is missing acidity. A row-wise complete-case filter
	// would shrink the aroma/flavor sample to two rows and change its
	// correlation; pairwise-complete semantics must not.
	full := []model.Rating{
		{Aroma: 7.0, Flavor: 7.4, Acidity: 7.3},
		{Aroma: 7.5, Flavor: 7.5, Acidity: 7.2},
		{Aroma: 8.0, Flavor: 8.3, Acidity: 7.9},
	}
	withGap := []model.Rating{
		{Aroma: 7.0, Flavor: 7.4, Acidity: 7.3},
		{Aroma: 7.5, Flavor: 7.5, Acidity: 7.2},
		{Aroma: 8.0, Flavor: 8.3, Acidity: math.NaN()},
	}

	cols := []string{model.ColAroma, model.ColFlavor, model.ColAcidity}

	fullMatrix, err := Correlation(full, cols)
	require.NoError(t, err)
	gapMatrix, err := Correlation(withGap, cols)
	require.NoError(t, err)

	// aroma/flavor cell is untouched by the missing acidity value.
	assert.InDelta(t, fullMatrix.At(0, 1), gapMatrix.At(0, 1), 1e-12)
}

func TestCorrelation_ZeroVarianceColumn(t *testing.T) {
	ratings := []model.Rating{
		{Aroma: 7.0, Flavor: 5.0},
		{Aroma: 7.5, Flavor: 5.0},
	}

	m, err := Correlation(ratings, []string{model.ColAroma, model.ColFlavor})
	require.NoError(t, err)

	assert.True(t, math.IsNaN(m.At(1, 1)))
	assert.True(t, math.IsNaN(m.At(0, 1)))
}

func TestCorrelation_UnknownColumn(t *testing.T) {
	_, err := Correlation(nil, []string{"caffeine"})
	require.Error(t, err)
}
