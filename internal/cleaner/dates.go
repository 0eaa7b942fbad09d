package cleaner

import (
	"regexp"
	"strings"
	"time"
)

// The raw dataset writes dates like "April 4th, 2017"; ISO dates also occur
// in re-exports. Both parse; anything else is treated as missing.
var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"January 2 2006",
	"01/02/2006",
}

var ordinalSuffixRegex = regexp.MustCompile(`(\d+)(st|nd|rd|th)\b`)

// parseDate parses a grading or expiration date. The zero time and false
// signal an unparseable value.
func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	s = ordinalSuffixRegex.ReplaceAllString(s, "$1")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
