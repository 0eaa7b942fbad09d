// Package model defines the core domain types shared across the cupping pipeline.
package model

import (
	"math"
	"time"
)

// Species values observed in the source dataset.
const (
	SpeciesArabica = "Arabica"
	SpeciesRobusta = "Robusta"
)

// Rating represents a single coffee-lot cupping evaluation after cleaning.
//
// Missing numeric values are represented as NaN; missing categorical values
// are the empty string. DaysToExpiration is nil when either of the two dates
// failed to parse.
type Rating struct {
	GradingDate      time.Time
	ExpirationDate   time.Time
	DaysToExpiration *int

	Species          string
	CountryOfOrigin  string
	Region           string
	Color            string
	Variety          string
	ProcessingMethod string

	Aroma        float64
	Flavor       float64
	Aftertaste   float64
	Acidity      float64
	Body         float64
	Balance      float64
	Uniformity   float64
	CleanCup     float64
	Sweetness    float64
	CupperPoints float64

	Moisture           float64
	AltitudeMeanMeters float64
	TotalCupPoints     float64
}

// HasAltitude reports whether the altitude survived cleaning.
func (r *Rating) HasAltitude() bool {
	return !math.IsNaN(r.AltitudeMeanMeters)
}

// ImportRun records one dataset import into local storage.
type ImportRun struct {
	ImportedAt  time.Time
	Source      string
	RowsRead    int
	RowsKept    int
	RowsDropped int
	ID          int64
}
