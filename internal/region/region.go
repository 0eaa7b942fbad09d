// Package region classifies coffee-producing countries into World Bank
// macro-regions. The table covers every country of origin observed in the
// coffee-quality dataset after country-name canonicalization.
package region

// World Bank macro-region labels.
const (
	LatinAmericaCaribbean = "Latin America & Caribbean"
	SubSaharanAfrica      = "Sub-Saharan Africa"
	EastAsiaPacific       = "East Asia & Pacific"
	SouthAsia             = "South Asia"
	MiddleEastNorthAfrica = "Middle East & North Africa"
	NorthAmerica          = "North America"
)

var byCountry = map[string]string{
	"Brazil":           LatinAmericaCaribbean,
	"Colombia":         LatinAmericaCaribbean,
	"Costa Rica":       LatinAmericaCaribbean,
	"Ecuador":          LatinAmericaCaribbean,
	"El Salvador":      LatinAmericaCaribbean,
	"Guatemala":        LatinAmericaCaribbean,
	"Haiti":            LatinAmericaCaribbean,
	"Honduras":         LatinAmericaCaribbean,
	"Mexico":           LatinAmericaCaribbean,
	"Nicaragua":        LatinAmericaCaribbean,
	"Panama":           LatinAmericaCaribbean,
	"Peru":             LatinAmericaCaribbean,
	"Puerto Rico":      LatinAmericaCaribbean,
	"Burundi":          SubSaharanAfrica,
	"Ethiopia":         SubSaharanAfrica,
	"Ivory Coast":      SubSaharanAfrica,
	"Kenya":            SubSaharanAfrica,
	"Malawi":           SubSaharanAfrica,
	"Mauritius":        SubSaharanAfrica,
	"Rwanda":           SubSaharanAfrica,
	"Tanzania":         SubSaharanAfrica,
	"Uganda":           SubSaharanAfrica,
	"Zambia":           SubSaharanAfrica,
	"China":            EastAsiaPacific,
	"Indonesia":        EastAsiaPacific,
	"Japan":            EastAsiaPacific,
	"Laos":             EastAsiaPacific,
	"Myanmar":          EastAsiaPacific,
	"Papua New Guinea": EastAsiaPacific,
	"Philippines":      EastAsiaPacific,
	"Taiwan":           EastAsiaPacific,
	"Thailand":         EastAsiaPacific,
	"Vietnam":          EastAsiaPacific,
	"India":            SouthAsia,
	"Yemen":            MiddleEastNorthAfrica,
	"USA":              NorthAmerica,
}

// ForCountry returns the World Bank macro-region for a canonical country
// name, or the empty string when the country is not in the table.
func ForCountry(country string) string {
	return byCountry[country]
}
