package model

import "math"

// Column names of the cleaned table, as used by the aggregation and
// modeling layers. These match the raw dataset's snake_case header names;
// region and days_to_expiration are derived during cleaning.
const (
	ColSpecies            = "species"
	ColCountryOfOrigin    = "country_of_origin"
	ColRegion             = "region"
	ColColor              = "color"
	ColVariety            = "variety"
	ColProcessingMethod   = "processing_method"
	ColAroma              = "aroma"
	ColFlavor             = "flavor"
	ColAftertaste         = "aftertaste"
	ColAcidity            = "acidity"
	ColBody               = "body"
	ColBalance            = "balance"
	ColUniformity         = "uniformity"
	ColCleanCup           = "clean_cup"
	ColSweetness          = "sweetness"
	ColCupperPoints       = "cupper_points"
	ColMoisture           = "moisture"
	ColAltitudeMeanMeters = "altitude_mean_meters"
	ColTotalCupPoints     = "total_cup_points"
	ColDaysToExpiration   = "days_to_expiration"
)

// SensoryColumns lists the ten continuous sensory sub-scores in dataset order.
var SensoryColumns = []string{
	ColAroma,
	ColFlavor,
	ColAftertaste,
	ColAcidity,
	ColBody,
	ColBalance,
	ColUniformity,
	ColCleanCup,
	ColSweetness,
	ColCupperPoints,
}

var numericAccessors = map[string]func(*Rating) float64{
	ColAroma:              func(r *Rating) float64 { return r.Aroma },
	ColFlavor:             func(r *Rating) float64 { return r.Flavor },
	ColAftertaste:         func(r *Rating) float64 { return r.Aftertaste },
	ColAcidity:            func(r *Rating) float64 { return r.Acidity },
	ColBody:               func(r *Rating) float64 { return r.Body },
	ColBalance:            func(r *Rating) float64 { return r.Balance },
	ColUniformity:         func(r *Rating) float64 { return r.Uniformity },
	ColCleanCup:           func(r *Rating) float64 { return r.CleanCup },
	ColSweetness:          func(r *Rating) float64 { return r.Sweetness },
	ColCupperPoints:       func(r *Rating) float64 { return r.CupperPoints },
	ColMoisture:           func(r *Rating) float64 { return r.Moisture },
	ColAltitudeMeanMeters: func(r *Rating) float64 { return r.AltitudeMeanMeters },
	ColTotalCupPoints:     func(r *Rating) float64 { return r.TotalCupPoints },
	ColDaysToExpiration: func(r *Rating) float64 {
		if r.DaysToExpiration == nil {
			return math.NaN()
		}
		return float64(*r.DaysToExpiration)
	},
}

var categoricalAccessors = map[string]func(*Rating) string{
	ColSpecies:          func(r *Rating) string { return r.Species },
	ColCountryOfOrigin:  func(r *Rating) string { return r.CountryOfOrigin },
	ColRegion:           func(r *Rating) string { return r.Region },
	ColColor:            func(r *Rating) string { return r.Color },
	ColVariety:          func(r *Rating) string { return r.Variety },
	ColProcessingMethod: func(r *Rating) string { return r.ProcessingMethod },
}

// IsNumericColumn reports whether name is a continuous column of the cleaned table.
func IsNumericColumn(name string) bool {
	_, ok := numericAccessors[name]
	return ok
}

// IsCategoricalColumn reports whether name is a categorical column of the cleaned table.
func IsCategoricalColumn(name string) bool {
	_, ok := categoricalAccessors[name]
	return ok
}

// NumericValue returns the value of a continuous column. The second return
// is false when the value is missing (NaN or nil days_to_expiration).
// Unknown column names must be rejected with IsNumericColumn before calling.
func NumericValue(r *Rating, column string) (float64, bool) {
	v := numericAccessors[column](r)
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// CategoricalValue returns the value of a categorical column. The second
// return is false when the value is missing (empty string).
func CategoricalValue(r *Rating, column string) (string, bool) {
	v := categoricalAccessors[column](r)
	if v == "" {
		return "", false
	}
	return v, true
}
