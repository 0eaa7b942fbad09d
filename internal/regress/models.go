package regress

import (
	"github.com/brewlytics/cupping/internal/model"
	"github.com/brewlytics/cupping/internal/region"
)

// Reference levels for the categorical predictors. Baselines are chosen for
// interpretability, not alphabetical accident: the dominant species, the
// most common processing method, and the region with the most ratings.
const (
	ReferenceSpecies          = model.SpeciesArabica
	ReferenceProcessingMethod = "Washed / Wet"
)

// ReferenceRegion is the baseline macro-region for the multi-factor model.
const ReferenceRegion = region.LatinAmericaCaribbean

// FlavorAltitudeSpecies is the interaction model
// flavor ~ altitude_mean_meters * species: both main effects plus their
// cross-product, so the altitude slope may differ per species.
func FlavorAltitudeSpecies() Spec {
	return Spec{
		Name:     "flavor ~ altitude * species",
		Response: model.ColFlavor,
		Terms: []Term{
			Numeric(model.ColAltitudeMeanMeters),
			Categorical(model.ColSpecies, ReferenceSpecies),
			Interaction(model.ColAltitudeMeanMeters, model.ColSpecies),
		},
	}
}

// FlavorMultiFactor is the additive multi-factor model
// flavor ~ altitude + species + region + processing_method + acidity +
// balance + body.
func FlavorMultiFactor() Spec {
	return Spec{
		Name:     "flavor ~ altitude + species + region + processing + acidity + balance + body",
		Response: model.ColFlavor,
		Terms: []Term{
			Numeric(model.ColAltitudeMeanMeters),
			Categorical(model.ColSpecies, ReferenceSpecies),
			Categorical(model.ColRegion, ReferenceRegion),
			Categorical(model.ColProcessingMethod, ReferenceProcessingMethod),
			Numeric(model.ColAcidity),
			Numeric(model.ColBalance),
			Numeric(model.ColBody),
		},
	}
}
