package datetext

import (
	"strings"
	"time"
	"unicode/utf8"
)

// monthNames holds folded English, French and German month names with their
// conventional abbreviations.
var monthNames = map[string]time.Month{
	// English
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,

	// French
	"janvier": time.January, "janv": time.January,
	"fevrier": time.February, "fevr": time.February, "fev": time.February,
	"mars":  time.March,
	"avril": time.April, "avr": time.April,
	"mai":  time.May,
	"juin": time.June,
	"juillet": time.July, "juil": time.July,
	"aout": time.August, "aou": time.August,
	"septembre": time.September,
	"octobre":   time.October,
	"novembre":  time.November,
	"decembre":  time.December,

	// German
	"januar": time.January, "janner": time.January,
	"februar": time.February,
	"marz": time.March, "maerz": time.March, "mrz": time.March,
	"juni":    time.June,
	"juli":    time.July,
	"oktober": time.October, "okt": time.October,
	"dezember": time.December, "dez": time.December,
}

// weekdayNames are words that often precede a date in scraped text and must
// not be mistaken for a month by prefix matching ("mardi" starts like "mar").
var weekdayNames = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {}, "friday": {}, "saturday": {}, "sunday": {},
	"mon": {}, "tue": {}, "tues": {}, "wed": {}, "thu": {}, "thur": {}, "thurs": {}, "fri": {}, "sat": {}, "sun": {},
	"lundi": {}, "mardi": {}, "mercredi": {}, "jeudi": {}, "vendredi": {}, "samedi": {}, "dimanche": {},
	"montag": {}, "dienstag": {}, "mittwoch": {}, "donnerstag": {}, "freitag": {}, "samstag": {}, "sonntag": {},
}

// minPrefixLen is the shortest token allowed to resolve through prefix
// matching. Single letters never resolve.
const minPrefixLen = 2

// NormalizeMonthToken folds token and drops periods and surrounding spaces.
func NormalizeMonthToken(token string) string {
	return strings.TrimSpace(strings.ReplaceAll(Fold(token), ".", ""))
}

// ResolveMonth maps a month name or abbreviation in English, French or German
// onto its month. An exact table hit wins; otherwise the token resolves only
// when every table key it shares a prefix with names the same month.
func ResolveMonth(token string) (time.Month, bool) {
	normalized := NormalizeMonthToken(token)
	if normalized == "" {
		return 0, false
	}
	if m, ok := monthNames[normalized]; ok {
		return m, true
	}
	if utf8.RuneCountInString(normalized) < minPrefixLen {
		return 0, false
	}
	if _, ok := weekdayNames[normalized]; ok {
		return 0, false
	}

	var found time.Month
	for key, m := range monthNames {
		if !strings.HasPrefix(key, normalized) && !strings.HasPrefix(normalized, key) {
			continue
		}
		if found != 0 && found != m {
			return 0, false
		}
		found = m
	}
	return found, found != 0
}

// IsWeekdayName reports whether token is a weekday name in a supported language.
func IsWeekdayName(token string) bool {
	_, ok := weekdayNames[NormalizeMonthToken(token)]
	return ok
}
