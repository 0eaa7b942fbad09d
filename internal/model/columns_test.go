package model

import (
	"math"
	"testing"
)

func TestNumericValue(t *testing.T) {
	days := 180
	r := Rating{
		Flavor:             8.5,
		AltitudeMeanMeters: math.NaN(),
		DaysToExpiration:   &days,
	}

	if v, ok := NumericValue(&r, ColFlavor); !ok || v != 8.5 {
		t.Errorf("NumericValue(flavor) = %v, %v; want 8.5, true", v, ok)
	}
	if _, ok := NumericValue(&r, ColAltitudeMeanMeters); ok {
		t.Error("NumericValue(altitude) should report NaN as missing")
	}
	if v, ok := NumericValue(&r, ColDaysToExpiration); !ok || v != 180 {
		t.Errorf("NumericValue(days_to_expiration) = %v, %v; want 180, true", v, ok)
	}

	r.DaysToExpiration = nil
	if _, ok := NumericValue(&r, ColDaysToExpiration); ok {
		t.Error("NumericValue(days_to_expiration) should report nil as missing")
	}
}

func TestCategoricalValue(t *testing.T) {
	r := Rating{Species: SpeciesArabica}

	if v, ok := CategoricalValue(&r, ColSpecies); !ok || v != SpeciesArabica {
		t.Errorf("CategoricalValue(species) = %v, %v; want Arabica, true", v, ok)
	}
	if _, ok := CategoricalValue(&r, ColRegion); ok {
		t.Error("CategoricalValue(region) should report empty as missing")
	}
}

func TestColumnKinds(t *testing.T) {
	for _, col := range SensoryColumns {
		if !IsNumericColumn(col) {
			t.Errorf("sensory column %q should be numeric", col)
		}
	}
	if !IsCategoricalColumn(ColProcessingMethod) {
		t.Errorf("%q should be categorical", ColProcessingMethod)
	}
	if IsNumericColumn("owner") || IsCategoricalColumn("owner") {
		t.Error("columns outside the cleaned table should be unknown")
	}
}
