package report

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlytics/cupping/internal/aggregate"
	"github.com/brewlytics/cupping/internal/model"
	"github.com/brewlytics/cupping/internal/regress"
)

func TestFormatCountrySummary(t *testing.T) {
	f := NewCLIFormatter()

	out := f.FormatCountrySummary([]aggregate.CountrySummary{
		{Country: "Ethiopia", Count: 44, MeanFlavor: 8.21},
		{Country: "Mauritius", Count: 1, MeanFlavor: math.NaN()},
	})

	assert.Contains(t, out, "Ethiopia")
	assert.Contains(t, out, "44")
	assert.Contains(t, out, "8.210")
	// A group with no flavor values renders a placeholder, not NaN.
	assert.NotContains(t, out, "NaN")
}

func TestFormatSpeciesDistribution(t *testing.T) {
	f := NewCLIFormatter()

	out := f.FormatSpeciesDistribution([]aggregate.SpeciesShare{
		{Species: model.SpeciesArabica, Count: 1311, Percent: 97.9},
		{Species: model.SpeciesRobusta, Count: 28, Percent: 2.1},
	})

	assert.Contains(t, out, "Arabica")
	assert.Contains(t, out, "97.9%")
}

func TestFormatModel(t *testing.T) {
	f := NewCLIFormatter()

	result := &regress.Result{
		Name:     "flavor ~ altitude * species",
		Response: model.ColFlavor,
		Coefficients: []regress.Coefficient{
			{Name: "(Intercept)", Estimate: 6.5, StdErr: 0.1, TValue: 65, PValue: 1e-10},
			{Name: "altitude_mean_meters", Estimate: 0.0004, StdErr: 0.0001, TValue: 4, PValue: 0.0001},
		},
		VIF:          map[string]float64{"altitude_mean_meters": 1.2},
		RSquared:     0.31,
		AdjRSquared:  0.30,
		Observations: 1100,
		DF:           1096,
	}

	out := f.FormatModel(result)
	assert.Contains(t, out, "(Intercept)")
	assert.Contains(t, out, "0.3100")
	assert.Contains(t, out, "***")
	assert.Contains(t, out, "1.20")
}

func TestFormatImportRuns(t *testing.T) {
	f := NewCLIFormatter()

	runs := []model.ImportRun{
		{
			ImportedAt:  time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
			Source:      "coffee_ratings.csv",
			RowsRead:    1339,
			RowsKept:    1338,
			RowsDropped: 1,
		},
		{
			ImportedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
			Source:     "https://example.com/a/very/long/path/to/the/raw/coffee_ratings.csv",
			RowsRead:   1339,
			RowsKept:   1339,
		},
	}

	out := f.FormatImportRuns(runs)
	assert.Contains(t, out, "coffee_ratings.csv")
	assert.Contains(t, out, "2026-08-29 10:30")
	assert.Contains(t, out, "1338")

	// Long sources are truncated, and order is preserved as given.
	assert.Contains(t, out, "…")
	assert.Less(t, strings.Index(out, "2026-08-29"), strings.Index(out, "2026-08-01"))
}

func TestFormatModelError(t *testing.T) {
	f := NewCLIFormatter()

	out := f.FormatModelError("additive", &regress.RankDeficiencyError{Column: "region=X"})
	assert.Contains(t, out, "additive")
	assert.Contains(t, out, "rank deficient")
}

func TestSignificanceMarker(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0.0001, "***"},
		{0.005, "**"},
		{0.03, "*"},
		{0.07, "."},
		{0.5, ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, significanceMarker(tt.p), "p=%v", tt.p)
	}
}
