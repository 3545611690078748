package calendar

import (
	"time"

	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/caldate"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/validator"
)

type ParseRequest struct {
	Text          string `json:"text"`
	ReferenceYear int    `json:"reference_year"`
}

func (r *ParseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Text) {
		errs = append(errs, validator.ValidationError{
			Field:   "text",
			Message: "text is required",
		})
	}
	if !validator.IsValidYear(r.ReferenceYear) {
		errs = append(errs, validator.ValidationError{
			Field:   "reference_year",
			Message: "reference_year must be between 1 and 9999",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ParseResponse struct {
	Text  string       `json:"text"`
	Start caldate.Date `json:"start"`
	End   caldate.Date `json:"end"`
}

// ExtractRequest carries raw page text lines: a date expression followed by
// its description.
type ExtractRequest struct {
	Lines         []string `json:"lines"`
	ReferenceYear int      `json:"reference_year"`
}

func (r *ExtractRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Lines) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "lines",
			Message: "lines must contain at least one entry",
		})
	}
	if !validator.IsValidYear(r.ReferenceYear) {
		errs = append(errs, validator.ValidationError{
			Field:   "reference_year",
			Message: "reference_year must be between 1 and 9999",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SkippedLine is a line the extractor could not read as a date expression.
type SkippedLine struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

type ExtractResponse struct {
	Events  []Event       `json:"events"`
	Skipped []SkippedLine `json:"skipped"`
}

// EventRecord is a structured leave record as delivered by a data source.
// Dates are ISO calendar dates. Category, when set to a taxonomy key, is used
// as-is; otherwise CategoryName is categorized.
type EventRecord struct {
	Title        string `json:"title"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	CategoryName string `json:"category_name"`
	Category     string `json:"category,omitempty"`
	Color        string `json:"color,omitempty"`
	Status       string `json:"status"`
}

func (r *EventRecord) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	if r.Color != "" && !validator.IsValidHexColor(r.Color) {
		errs = append(errs, validator.ValidationError{
			Field:   "color",
			Message: "color must be a #rrggbb hex color",
		})
	}
	if r.Category != "" {
		if _, ok := ParseCategory(r.Category); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "category",
				Message: "category is not a known leave category",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RenderRequest struct {
	View   ViewKind   `json:"view"`
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Locale Locale     `json:"locale"`
}

func (r *RenderRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.View != ViewMonth && r.View != ViewYear {
		errs = append(errs, validator.ValidationError{
			Field:   "view",
			Message: "view must be one of: month, year",
		})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1 and 9999",
		})
	}
	if r.View == ViewMonth && !validator.IsValidMonth(int(r.Month)) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateSessionRequest struct {
	Locale Locale `json:"locale,omitempty"`
}

type ActionRequest struct {
	Action Action `json:"action"`
}

func (r *ActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(string(r.Action), []string{
		string(ActionToggleView), string(ActionPrev), string(ActionNext),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: toggle_view, prev, next",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LegendEntry struct {
	Category string      `json:"category"`
	Label    string      `json:"label"`
	Color    RGBHexColor `json:"color"`
}

type HeaderCell struct {
	Label     string `json:"label"`
	IsHeader  bool   `json:"is_header"`
	IsWeekend bool   `json:"is_weekend"`
}

// EventLine is one event drawn inside a month-view day cell.
type EventLine struct {
	Title    string         `json:"title"`
	Category EventCategory  `json:"category"`
	Color    RGBHexColor    `json:"color"`
	Status   ApprovalStatus `json:"status"`
	Tooltip  string         `json:"tooltip"`
}

type CellView struct {
	Date           caldate.Date  `json:"date"`
	Day            int           `json:"day"`
	IsHeader       bool          `json:"is_header"`
	IsOutsideMonth bool          `json:"is_outside_month"`
	IsWeekend      bool          `json:"is_weekend"`
	IsToday        bool          `json:"is_today"`
	Category       EventCategory `json:"category,omitempty"`
	Color          RGBHexColor   `json:"color,omitempty"`
	Tooltip        string        `json:"tooltip,omitempty"`
	Events         []EventLine   `json:"events,omitempty"`
}

type MonthView struct {
	Kind    ViewKind      `json:"kind"`
	Year    int           `json:"year"`
	Month   time.Month    `json:"month"`
	Title   string        `json:"title"`
	Headers []HeaderCell  `json:"headers"`
	Cells   []CellView    `json:"cells"`
	Legend  []LegendEntry `json:"legend"`
}

// MiniMonth is one of the twelve compact grids of a year view.
type MiniMonth struct {
	Month   time.Month   `json:"month"`
	Title   string       `json:"title"`
	Headers []HeaderCell `json:"headers"`
	Cells   []CellView   `json:"cells"`
}

type YearView struct {
	Kind   ViewKind      `json:"kind"`
	Year   int           `json:"year"`
	Title  string        `json:"title"`
	Months []MiniMonth   `json:"months"`
	Legend []LegendEntry `json:"legend"`
}

// CalendarView is what a client paints. While the active year is loading
// only State, Loading and Message are set; otherwise exactly one of Month and
// Year is set.
type CalendarView struct {
	SessionID string     `json:"session_id,omitempty"`
	State     ViewState  `json:"state"`
	Locale    Locale     `json:"locale"`
	Loading   bool       `json:"loading"`
	NoData    bool       `json:"no_data"`
	Message   string     `json:"message,omitempty"`
	Month     *MonthView `json:"month_view,omitempty"`
	Year      *YearView  `json:"year_view,omitempty"`
}

// SSEEvent represents a Server-Sent Event for a calendar session.
type SSEEvent struct {
	Event string       `json:"event"`
	Data  CalendarView `json:"data"`
}
