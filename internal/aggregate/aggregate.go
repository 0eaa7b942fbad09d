// Package aggregate computes the descriptive summaries of the cleaned
// rating set: per-country counts and mean flavor, the species breakdown,
// and a pairwise-complete Pearson correlation matrix.
package aggregate

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/brewlytics/cupping/internal/model"
)

// CountrySummary is one row of the per-country aggregate.
type CountrySummary struct {
	Country    string
	MeanFlavor float64
	Count      int
}

// SpeciesShare is one row of the species breakdown.
type SpeciesShare struct {
	Species string
	Percent float64
	Count   int
}

// SummarizeByCountry groups ratings by canonical country of origin and
// returns counts and mean flavor, sorted by count descending. Rows with a
// null country are excluded from this aggregate only; null flavor values
// are ignored within a group rather than poisoning its mean.
func SummarizeByCountry(ratings []model.Rating) []CountrySummary {
	type acc struct {
		flavorSum float64
		flavorN   int
		count     int
	}
	groups := make(map[string]*acc)

	for i := range ratings {
		country := ratings[i].CountryOfOrigin
		if country == "" {
			continue
		}
		g := groups[country]
		if g == nil {
			g = &acc{}
			groups[country] = g
		}
		g.count++
		if !math.IsNaN(ratings[i].Flavor) {
			g.flavorSum += ratings[i].Flavor
			g.flavorN++
		}
	}

	summaries := make([]CountrySummary, 0, len(groups))
	for country, g := range groups {
		mean := math.NaN()
		if g.flavorN > 0 {
			mean = g.flavorSum / float64(g.flavorN)
		}
		summaries = append(summaries, CountrySummary{
			Country:    country,
			Count:      g.count,
			MeanFlavor: mean,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Count != summaries[j].Count {
			return summaries[i].Count > summaries[j].Count
		}
		return summaries[i].Country < summaries[j].Country
	})
	return summaries
}

// SpeciesDistribution returns the count and percentage of ratings per
// species, sorted by count descending. Percentages sum to 100 within
// floating-point tolerance.
func SpeciesDistribution(ratings []model.Rating) []SpeciesShare {
	counts := make(map[string]int)
	total := 0
	for i := range ratings {
		if ratings[i].Species == "" {
			continue
		}
		counts[ratings[i].Species]++
		total++
	}

	shares := make([]SpeciesShare, 0, len(counts))
	for species, count := range counts {
		shares = append(shares, SpeciesShare{
			Species: species,
			Count:   count,
			Percent: 100 * float64(count) / float64(total),
		})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Species < shares[j].Species
	})
	return shares
}

// CorrelationMatrix is a symmetric matrix of pairwise Pearson correlations.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// At returns the correlation between the i-th and j-th columns.
func (m *CorrelationMatrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// Correlation computes pairwise Pearson correlations over the named
// continuous columns. Each cell uses only the rows where both of its two
// columns are non-null ("pairwise complete"), not a single row-wise
// complete-case filter: a row missing altitude still contributes to every
// pair that does not involve altitude.
func Correlation(ratings []model.Rating, columns []string) (*CorrelationMatrix, error) {
	for _, col := range columns {
		if !model.IsNumericColumn(col) {
			return nil, fmt.Errorf("unknown numeric column %q", col)
		}
	}

	n := len(columns)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var xs, ys []float64
			for k := range ratings {
				x, okX := model.NumericValue(&ratings[k], columns[i])
				y, okY := model.NumericValue(&ratings[k], columns[j])
				if okX && okY {
					xs = append(xs, x)
					ys = append(ys, y)
				}
			}
			r := math.NaN()
			if len(xs) > 1 {
				r = stat.Correlation(xs, ys, nil)
			}
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &CorrelationMatrix{Columns: columns, Values: values}, nil
}
