package calendar

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/caldate"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/datetext"
)

// EventCategory is the closed leave taxonomy used for coloring and the legend.
type EventCategory string

const (
	CategoryRTT       EventCategory = "rtt"
	CategoryPaidLeave EventCategory = "paid_leave"
	CategoryHoliday   EventCategory = "holiday"
	CategorySeniority EventCategory = "seniority"
	CategorySick      EventCategory = "sick"
	CategoryPaternity EventCategory = "paternity"
	CategoryUnpaid    EventCategory = "unpaid"
	CategoryOther     EventCategory = "other"
)

// Categories lists the taxonomy in legend order.
var Categories = []EventCategory{
	CategoryRTT,
	CategoryPaidLeave,
	CategoryHoliday,
	CategorySeniority,
	CategorySick,
	CategoryPaternity,
	CategoryUnpaid,
	CategoryOther,
}

// RGBHexColor is a "#rrggbb" color string.
type RGBHexColor string

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func (c RGBHexColor) Valid() bool {
	return hexColorRegex.MatchString(string(c))
}

// WeekendColor paints the synthetic "Weekends" legend entry.
const WeekendColor RGBHexColor = "#f0f0f0"

var categoryColors = map[EventCategory]RGBHexColor{
	CategoryRTT:       "#4CAF50",
	CategoryPaidLeave: "#2196F3",
	CategoryHoliday:   "#9C27B0",
	CategorySeniority: "#FF9800",
	CategorySick:      "#795548",
	CategoryPaternity: "#fd6c9e",
	CategoryUnpaid:    "#E91E63",
	CategoryOther:     "#607D8B",
}

// Color returns the canonical color of c; unknown categories paint as Other.
func (c EventCategory) Color() RGBHexColor {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return categoryColors[CategoryOther]
}

func (c EventCategory) Valid() bool {
	_, ok := categoryColors[c]
	return ok
}

// ParseCategory accepts a taxonomy key such as "paid_leave".
func ParseCategory(s string) (EventCategory, bool) {
	c := EventCategory(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

type ApprovalStatus string

const (
	StatusApproved ApprovalStatus = "approved"
	StatusPending  ApprovalStatus = "pending"
)

const approvalWords = `(?:approved|approuvee?s?|genehmigt|accepted|acceptee?s?)`

var (
	// Whole words only: "disapproved" and "unapproved" never match.
	approvedRegex = regexp.MustCompile(`\b` + approvalWords + `\b`)
	// A negation directly in front of the approval word, optionally followed
	// by "yet"/"encore"/"noch": "not yet approved", "pas approuvé", "non-approuvé".
	negatedRegex = regexp.MustCompile(`\b(?:not|non|pas|nicht|never|jamais|nie)(?:\s+(?:yet|encore|noch))?[\s\-]+` + approvalWords + `\b`)
	// Phrases that announce a decision still to come.
	awaitingRegex = regexp.MustCompile(`\b(?:pending|awaiting|yet to be|to be approved|en attente|a approuver|ausstehend|noch nicht)\b`)
)

// ParseApprovalStatus folds free-text status strings onto the approved/pending
// binary. Anything it does not recognize is pending.
func ParseApprovalStatus(s string) ApprovalStatus {
	folded := datetext.Fold(s)
	if negatedRegex.MatchString(folded) || awaitingRegex.MatchString(folded) {
		return StatusPending
	}
	if approvedRegex.MatchString(folded) {
		return StatusApproved
	}
	return StatusPending
}

// Event is one leave, holiday or absence over an inclusive day range. Events
// are values: the store hands out copies and nothing mutates them.
type Event struct {
	Title    string         `json:"title"`
	Start    caldate.Date   `json:"start"`
	End      caldate.Date   `json:"end"`
	Category EventCategory  `json:"category"`
	Color    RGBHexColor    `json:"color"`
	Status   ApprovalStatus `json:"status"`
}

// NewEvent validates the range and fills the category color when color is
// empty. An explicit color is kept as supplied.
func NewEvent(title string, start, end caldate.Date, category EventCategory, color RGBHexColor, status ApprovalStatus) (Event, error) {
	if !start.Valid() || !end.Valid() {
		return Event{}, fmt.Errorf("%w: %s..%s", ErrInvalidEventRange, start, end)
	}
	if end.Before(start) {
		return Event{}, fmt.Errorf("%w: end %s precedes start %s", ErrInvalidEventRange, end, start)
	}
	if !category.Valid() {
		category = CategoryOther
	}
	if color == "" {
		color = category.Color()
	}
	if status != StatusApproved {
		status = StatusPending
	}
	return Event{
		Title:    title,
		Start:    start,
		End:      end,
		Category: category,
		Color:    color,
		Status:   status,
	}, nil
}

// Covers reports whether d falls inside the event's inclusive range.
func (e Event) Covers(d caldate.Date) bool {
	return d.Between(e.Start, e.End)
}

// EventKey identifies the same logical leave across data sources.
type EventKey struct {
	Category EventCategory
	Start    caldate.Date
	End      caldate.Date
}

func (e Event) Key() EventKey {
	return EventKey{Category: e.Category, Start: e.Start, End: e.End}
}

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleFR Locale = "fr"
	LocaleDE Locale = "de"
)

var Locales = []Locale{LocaleEN, LocaleFR, LocaleDE}

func ParseLocale(s string) (Locale, bool) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case LocaleEN, LocaleFR, LocaleDE:
		return l, true
	}
	return "", false
}

type ViewKind string

const (
	ViewMonth ViewKind = "month"
	ViewYear  ViewKind = "year"
)

type Action string

const (
	ActionToggleView Action = "toggle_view"
	ActionPrev       Action = "prev"
	ActionNext       Action = "next"
)

// ViewState is what a calendar instance is showing. Month is kept while in
// year view so toggling back returns to the same month.
type ViewState struct {
	Kind  ViewKind   `json:"view"`
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// InitialViewState is the year view of now's year.
func InitialViewState(now time.Time) ViewState {
	return ViewState{Kind: ViewYear, Year: now.Year(), Month: now.Month()}
}

func (s ViewState) Validate() error {
	if s.Kind != ViewMonth && s.Kind != ViewYear {
		return fmt.Errorf("%w: %q", ErrUnknownView, s.Kind)
	}
	if s.Year < caldate.MinYear || s.Year > caldate.MaxYear {
		return fmt.Errorf("%w: %d", caldate.ErrInvalidYear, s.Year)
	}
	if s.Month < time.January || s.Month > time.December {
		return fmt.Errorf("%w: %d", caldate.ErrInvalidMonth, int(s.Month))
	}
	return nil
}

// Apply returns the state after action. Prev/Next move by one month in
// month view, rolling the year at the January/December boundary, and by one
// year in year view.
func (s ViewState) Apply(action Action) (ViewState, error) {
	next := s
	switch action {
	case ActionToggleView:
		if s.Kind == ViewYear {
			next.Kind = ViewMonth
		} else {
			next.Kind = ViewYear
		}
	case ActionPrev:
		next = s.step(-1)
	case ActionNext:
		next = s.step(1)
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if err := next.Validate(); err != nil {
		return s, err
	}
	return next, nil
}

func (s ViewState) step(delta int) ViewState {
	if s.Kind == ViewYear {
		s.Year += delta
		return s
	}
	s.Month += time.Month(delta)
	switch {
	case s.Month < time.January:
		s.Month = time.December
		s.Year--
	case s.Month > time.December:
		s.Month = time.January
		s.Year++
	}
	return s
}

// CalendarCell is one day of a rendered grid. Events holds every stored event
// covering Date, in store order; PrimaryCategory is the first one's category.
type CalendarCell struct {
	Date            caldate.Date
	Day             int
	OutsideMonth    bool
	Weekend         bool
	Today           bool
	Events          []Event
	PrimaryCategory EventCategory
}

// HasEvents is true when at least one event covers the cell.
func (c CalendarCell) HasEvents() bool {
	return len(c.Events) > 0
}

// CalendarGrid is the 42-cell Monday-first grid of one month.
type CalendarGrid struct {
	Year         int
	Month        time.Month
	StartWeekday int
	Cells        [caldate.GridSize]CalendarCell
}
