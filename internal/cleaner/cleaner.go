// Package cleaner turns the raw 43-column coffee-quality table into the
// cleaned rating set the aggregation and modeling layers consume.
//
// Cleaning is a pure function over the raw table: project the 20 analysis
// columns, drop data-entry-failure rows, null implausible altitudes, derive
// days_to_expiration, and canonicalize country names. Malformed individual
// values become nulls; only a missing required column aborts the run.
package cleaner

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/brewlytics/cupping/internal/loader"
	"github.com/brewlytics/cupping/internal/model"
	"github.com/brewlytics/cupping/internal/region"
)

// MaxPlausibleAltitudeMeters is the cutoff above which altitude_mean_meters
// is treated as a data-entry error and nulled rather than dropped.
const MaxPlausibleAltitudeMeters = 8000

// Raw header names of the columns the pipeline keeps.
const (
	rawSpecies          = "species"
	rawCountryOfOrigin  = "country_of_origin"
	rawGradingDate      = "grading_date"
	rawExpiration       = "expiration"
	rawAroma            = "aroma"
	rawFlavor           = "flavor"
	rawAftertaste       = "aftertaste"
	rawAcidity          = "acidity"
	rawBody             = "body"
	rawBalance          = "balance"
	rawUniformity       = "uniformity"
	rawCleanCup         = "clean_cup"
	rawSweetness        = "sweetness"
	rawCupperPoints     = "cupper_points"
	rawTotalCupPoints   = "total_cup_points"
	rawMoisture         = "moisture"
	rawColor            = "color"
	rawAltitudeMean     = "altitude_mean_meters"
	rawVariety          = "variety"
	rawProcessingMethod = "processing_method"
)

// RequiredColumns lists the raw columns the cleaner projects. Any one of
// them missing from the input header is a SchemaError.
var RequiredColumns = []string{
	rawSpecies,
	rawCountryOfOrigin,
	rawGradingDate,
	rawExpiration,
	rawAroma,
	rawFlavor,
	rawAftertaste,
	rawAcidity,
	rawBody,
	rawBalance,
	rawUniformity,
	rawCleanCup,
	rawSweetness,
	rawCupperPoints,
	rawTotalCupPoints,
	rawMoisture,
	rawColor,
	rawAltitudeMean,
	rawVariety,
	rawProcessingMethod,
}

// SchemaError reports a required column absent from the input table. It is
// fatal: no partial cleaned table is usable.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required column %q missing from input table", e.Column)
}

// Stats summarizes what cleaning changed.
type Stats struct {
	RowsRead        int
	RowsKept        int
	ZeroScoreRows   int
	AltitudesNulled int
	DatesUnparsed   int
}

// Clean projects, filters, and normalizes the raw table into rating records.
func Clean(raw *loader.RawTable) ([]model.Rating, Stats, error) {
	var stats Stats

	index := make(map[string]int, len(RequiredColumns))
	for _, col := range RequiredColumns {
		i, ok := raw.ColumnIndex(col)
		if !ok {
			return nil, stats, &SchemaError{Column: col}
		}
		index[col] = i
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	ratings := make([]model.Rating, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		stats.RowsRead++

		totalCupPoints := parseFloat(cell(row, rawTotalCupPoints))
		if totalCupPoints == 0 {
			// All-zero ratings are data-entry failures, not valid low scores.
			stats.ZeroScoreRows++
			continue
		}

		r := model.Rating{
			Species:          cell(row, rawSpecies),
			Color:            cell(row, rawColor),
			Variety:          cell(row, rawVariety),
			ProcessingMethod: cell(row, rawProcessingMethod),
			Aroma:            parseFloat(cell(row, rawAroma)),
			Flavor:           parseFloat(cell(row, rawFlavor)),
			Aftertaste:       parseFloat(cell(row, rawAftertaste)),
			Acidity:          parseFloat(cell(row, rawAcidity)),
			Body:             parseFloat(cell(row, rawBody)),
			Balance:          parseFloat(cell(row, rawBalance)),
			Uniformity:       parseFloat(cell(row, rawUniformity)),
			CleanCup:         parseFloat(cell(row, rawCleanCup)),
			Sweetness:        parseFloat(cell(row, rawSweetness)),
			CupperPoints:     parseFloat(cell(row, rawCupperPoints)),
			Moisture:         parseFloat(cell(row, rawMoisture)),
			TotalCupPoints:   totalCupPoints,
		}

		r.AltitudeMeanMeters = parseFloat(cell(row, rawAltitudeMean))
		if r.AltitudeMeanMeters > MaxPlausibleAltitudeMeters {
			r.AltitudeMeanMeters = math.NaN()
			stats.AltitudesNulled++
		}

		r.CountryOfOrigin = CanonicalCountry(cell(row, rawCountryOfOrigin))
		r.Region = region.ForCountry(r.CountryOfOrigin)

		graded, gradedOK := parseDate(cell(row, rawGradingDate))
		expires, expiresOK := parseDate(cell(row, rawExpiration))
		if gradedOK {
			r.GradingDate = graded
		}
		if expiresOK {
			r.ExpirationDate = expires
		}
		if gradedOK && expiresOK {
			days := int(expires.Sub(graded).Hours() / 24)
			r.DaysToExpiration = &days
		} else {
			stats.DatesUnparsed++
		}

		ratings = append(ratings, r)
		stats.RowsKept++
	}

	return ratings, stats, nil
}

// parseFloat converts a raw cell to a float, mapping empty or malformed
// values to NaN.
func parseFloat(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
