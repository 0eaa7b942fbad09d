package cleaner

// countrySynonyms collapses the raw dataset's country-name variants to one
// canonical label each. Applied before any grouping; grouping on the raw
// strings would fragment counts across spellings.
var countrySynonyms = map[string]string{
	"United States":                "USA",
	"United States (Hawaii)":       "USA",
	"United States (Puerto Rico)":  "Puerto Rico",
	"Tanzania, United Republic Of": "Tanzania",
	"Cote d?Ivoire":                "Ivory Coast",
}

// CanonicalCountry maps a raw country-of-origin string to its canonical
// name. Names without a synonym entry pass through unchanged, so the
// mapping is idempotent.
func CanonicalCountry(name string) string {
	if canonical, ok := countrySynonyms[name]; ok {
		return canonical
	}
	return name
}
