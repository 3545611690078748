package calendar

import (
	"regexp"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/datetext"
)

type categoryRule struct {
	category calendar.EventCategory
	pattern  *regexp.Regexp
}

// abCode matches a host absence code such as "AB-310" in a folded label.
func abCode(n string) string {
	return `ab[\s\-–]?` + n
}

// holidayKeywords spans the supported languages; labels are matched after
// lowercasing and diacritic folding. "ferie" is a whole word so German
// "Ferien" (school vacation) is not read as a public holiday.
const holidayKeywords = `holiday|\bferies?\b|feiertag|easter|paques|ostern|ostermontag|karfreitag|good friday|` +
	`ascension|auffahrt|himmelfahrt|pentecost|pentecote|pfingst|whit monday|` +
	`labou?r day|fete du travail|tag der arbeit|victoire|armistice|` +
	`assumption|assomption|toussaint|all saints|allerheiligen|` +
	`christmas|noel|weihnacht|new year|nouvel an|jour de l'an|neujahr|` +
	`bastille|fete nationale|national day`

// categoryRules is checked in order; the first match wins. Specific leave
// kinds come before the generic paid leave keywords so that "unpaid leave" or
// "sick leave" keep their own category.
var categoryRules = []categoryRule{
	{calendar.CategoryRTT, regexp.MustCompile(`rtt|` + abCode("310"))},
	{calendar.CategorySeniority, regexp.MustCompile(`ancienn|seniority|` + abCode("631"))},
	{calendar.CategoryHoliday, regexp.MustCompile(holidayKeywords)},
	{calendar.CategoryUnpaid, regexp.MustCompile(`unpaid|sans solde|unbezahlt|` + abCode("632"))},
	{calendar.CategorySick, regexp.MustCompile(`sick|maladie|krank|` + abCode("100"))},
	{calendar.CategoryPaternity, regexp.MustCompile(`paternit|vaterschaft|` + abCode("210"))},
	{calendar.CategoryPaidLeave, regexp.MustCompile(`conge|leave|vacation|urlaub|ferien|` + abCode("300"))},
}

// Categorize classifies a free-text leave label into the taxonomy.
func Categorize(label string) calendar.EventCategory {
	folded := datetext.Fold(label)
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(folded) {
			return rule.category
		}
	}
	return calendar.CategoryOther
}
