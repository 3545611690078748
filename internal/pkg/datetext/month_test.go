package datetext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveMonth_ExactNames(t *testing.T) {
	cases := map[string]time.Month{
		"January":   time.January,
		"janv.":     time.January,
		"Januar":    time.January,
		"février":   time.February,
		"fevrier":   time.February,
		"févr.":     time.February,
		"Feb":       time.February,
		"März":      time.March,
		"mär":       time.March,
		"maerz":     time.March,
		"mars":      time.March,
		"avr.":      time.April,
		"mai":       time.May,
		"May":       time.May,
		"juin":      time.June,
		"Juni":      time.June,
		"juil.":     time.July,
		"Jul":       time.July,
		"août":      time.August,
		"août.":     time.August,
		"aoû":       time.August,
		"aou":       time.August,
		"sept.":     time.September,
		"Okt":       time.October,
		"novembre":  time.November,
		"décembre":  time.December,
		"decembre":  time.December,
		"Dez.":      time.December,
		"DECEMBER":  time.December,
		"Dezember":  time.December,
		"septembre": time.September,
	}
	for token, want := range cases {
		got, ok := ResolveMonth(token)
		if assert.True(t, ok, token) {
			assert.Equal(t, want, got, token)
		}
	}
}

func TestResolveMonth_AccentsFoldIdentically(t *testing.T) {
	for _, pair := range [][2]string{
		{"février", "fevrier"},
		{"décembre", "decembre"},
		{"août", "aout"},
		{"März", "marz"},
	} {
		a, okA := ResolveMonth(pair[0])
		b, okB := ResolveMonth(pair[1])
		assert.True(t, okA && okB, pair[0])
		assert.Equal(t, a, b, pair[0])
	}
}

func TestResolveMonth_Prefixes(t *testing.T) {
	cases := map[string]time.Month{
		"septem":    time.September, // unseen abbreviation length
		"octob":     time.October,
		"decemb":    time.December,
		"januaryy":  time.January, // table key is a prefix of the token
		"novembers": time.November,
		"fe":        time.February,
	}
	for token, want := range cases {
		got, ok := ResolveMonth(token)
		if assert.True(t, ok, token) {
			assert.Equal(t, want, got, token)
		}
	}
}

func TestResolveMonth_AmbiguousOrUnknown(t *testing.T) {
	for _, token := range []string{
		"m",     // single letter
		"ma",    // March or May
		"ju",    // June or July
		"j",     // single letter
		"a",     // single letter
		"",      // empty
		"??",    // no letters
		"jours", // not a month
		"mardi", // weekday, shares a prefix with "mar"
		"xyz",
	} {
		_, ok := ResolveMonth(token)
		assert.False(t, ok, "%q should not resolve", token)
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "conges payes", Fold("Congés Payés"))
	assert.Equal(t, "paternite", Fold("Paternité"))
	assert.Equal(t, "ferie", Fold("FÉRIÉ"))
	// Decomposed input folds like precomposed input.
	assert.Equal(t, Fold("février"), Fold("février"))
}
