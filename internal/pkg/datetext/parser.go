package datetext

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/caldate"
)

var (
	ErrDateParse         = errors.New("unrecognized date expression")
	ErrUnknownMonthToken = errors.New("unknown month token")
)

// minMonthTokenLen is the shortest alphabetic run considered a month token.
const minMonthTokenLen = 3

// ParseError reports why a date expression could not be read. It matches
// ErrDateParse and, when the month was the culprit, ErrUnknownMonthToken.
type ParseError struct {
	Text   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse date expression %q: %s", e.Text, e.Reason)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrDateParse, e.Err}
	}
	return []error{ErrDateParse}
}

// Range is an inclusive pair of calendar days.
type Range struct {
	Start caldate.Date `json:"start"`
	End   caldate.Date `json:"end"`
}

// dashReplacer maps the dash variants found in scraped text onto '-', the
// only range delimiter.
var dashReplacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
)

// Parse reads a single date ("21 mai") or a range ("14 avr. – 18",
// "28 juil. – 18 août", "Jul 12 - 15") in English, French or German.
// referenceYear applies to any part that carries no four-digit year.
func Parse(text string, referenceYear int) (Range, error) {
	normalized := strings.TrimSpace(dashReplacer.Replace(text))
	if normalized == "" {
		return Range{}, &ParseError{Text: text, Reason: "empty expression"}
	}

	if left, right, isRange := strings.Cut(normalized, "-"); isRange {
		return parseRange(text, left, right, referenceYear)
	}
	return parseSingle(text, normalized, referenceYear)
}

func parseSingle(text, s string, referenceYear int) (Range, error) {
	p := scanPart(s)
	if !p.hasDay {
		return Range{}, &ParseError{Text: text, Reason: "no day number"}
	}
	if !p.hasMonth {
		return Range{}, monthError(text, "month", p)
	}

	year := referenceYear
	if p.hasYear {
		year = p.year
	}
	d := caldate.New(year, p.month, p.day)
	if !d.Valid() {
		return Range{}, &ParseError{Text: text, Reason: fmt.Sprintf("%s is not a calendar day", d)}
	}
	return Range{Start: d, End: d}, nil
}

func parseRange(text, leftPart, rightPart string, referenceYear int) (Range, error) {
	left := scanPart(leftPart)
	if !left.hasDay {
		return Range{}, &ParseError{Text: text, Reason: "no start day"}
	}
	if !left.hasMonth {
		return Range{}, monthError(text, "start month", left)
	}

	right := scanPart(rightPart)
	if !right.hasDay {
		return Range{}, &ParseError{Text: text, Reason: "no end day"}
	}

	startYear := referenceYear
	if left.hasYear {
		startYear = left.year
	}

	// Same-month form: "14 avr. – 18".
	endMonth := left.month
	if right.hasMonth {
		endMonth = right.month
	}

	endYear := startYear
	switch {
	case right.hasYear:
		endYear = right.year
	case endMonth < left.month:
		// "28 déc. – 3 janv." crosses into the next year.
		endYear = startYear + 1
	}

	start := caldate.New(startYear, left.month, left.day)
	end := caldate.New(endYear, endMonth, right.day)
	if !start.Valid() {
		return Range{}, &ParseError{Text: text, Reason: fmt.Sprintf("start %s is not a calendar day", start)}
	}
	if !end.Valid() {
		return Range{}, &ParseError{Text: text, Reason: fmt.Sprintf("end %s is not a calendar day", end)}
	}
	if end.Before(start) {
		return Range{}, &ParseError{Text: text, Reason: fmt.Sprintf("end %s precedes start %s", end, start)}
	}
	return Range{Start: start, End: end}, nil
}

func monthError(text, what string, p part) error {
	if p.unresolved != "" {
		return &ParseError{
			Text:   text,
			Reason: fmt.Sprintf("%s token %q not recognized", what, p.unresolved),
			Err:    ErrUnknownMonthToken,
		}
	}
	return &ParseError{Text: text, Reason: "no " + what}
}

// part is what one side of a range (or a whole single date) yields.
type part struct {
	day     int
	hasDay  bool
	year    int
	hasYear bool

	month    time.Month
	hasMonth bool
	// unresolved is the first word that looked like a month token but did
	// not resolve, kept for error reporting.
	unresolved string
}

// scanPart takes the first one- or two-digit number as the day, the first
// four-digit number as the year and the first resolvable alphabetic run of at
// least three letters as the month. Weekday names are skipped.
func scanPart(s string) part {
	var p part
	for _, tok := range tokenize(s) {
		switch {
		case tok.numeric:
			n, err := strconv.Atoi(tok.text)
			if err != nil {
				continue
			}
			switch len(tok.text) {
			case 1, 2:
				if !p.hasDay {
					p.day, p.hasDay = n, true
				}
			case 4:
				if !p.hasYear {
					p.year, p.hasYear = n, true
				}
			}
		case utf8.RuneCountInString(tok.text) >= minMonthTokenLen:
			if p.hasMonth || IsWeekdayName(tok.text) {
				continue
			}
			if m, ok := ResolveMonth(tok.text); ok {
				p.month, p.hasMonth = m, true
			} else if p.unresolved == "" {
				p.unresolved = tok.text
			}
		}
	}
	return p
}

type token struct {
	text    string
	numeric bool
}

// tokenize splits s into runs of digits and runs of letters. Combining marks
// stay attached to their letter so decomposed input reads as one word.
func tokenize(s string) []token {
	var (
		tokens  []token
		current strings.Builder
		numeric bool
	)
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, token{text: current.String(), numeric: numeric})
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			if current.Len() > 0 && !numeric {
				flush()
			}
			numeric = true
			current.WriteRune(r)
		case unicode.IsLetter(r) || (unicode.IsMark(r) && current.Len() > 0 && !numeric):
			if current.Len() > 0 && numeric {
				flush()
			}
			numeric = false
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}
