package caldate

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinYear = 1
	MaxYear = 9999

	// GridSize is the number of day cells in a month table: 6 weeks of 7 days.
	GridSize = 42
	// DaysPerWeek is also the number of header cells above a month table.
	DaysPerWeek = 7
)

var (
	ErrInvalidYear  = errors.New("invalid year")
	ErrInvalidMonth = errors.New("invalid month")
)

// Day is one cell of a month table.
type Day struct {
	Date         Date
	Number       int
	OutsideMonth bool
	Weekend      bool
}

// MonthTable is the Monday-first 6x7 layout of one month, padded with the
// trailing days of the previous month and the leading days of the next one.
type MonthTable struct {
	Year         int
	Month        time.Month
	StartWeekday int // index of day 1, Monday=0 .. Sunday=6
	DaysInMonth  int
	Days         [GridSize]Day
}

// MondayIndex maps a time.Weekday onto a Monday-first column index.
func MondayIndex(w time.Weekday) int {
	return (int(w) + 6) % DaysPerWeek
}

// IsWeekendColumn reports whether column (Monday=0) is Saturday or Sunday.
func IsWeekendColumn(column int) bool {
	return column%DaysPerWeek >= 5
}

// NewMonthTable lays out month of year. Out of range arguments are the only
// failure mode.
func NewMonthTable(year int, month time.Month) (MonthTable, error) {
	if year < MinYear || year > MaxYear {
		return MonthTable{}, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	if month < time.January || month > time.December {
		return MonthTable{}, fmt.Errorf("%w: %d", ErrInvalidMonth, int(month))
	}

	first := New(year, month, 1)
	table := MonthTable{
		Year:         year,
		Month:        month,
		StartWeekday: MondayIndex(first.Weekday()),
		DaysInMonth:  DaysIn(year, month),
	}

	origin := first.AddDays(-table.StartWeekday)
	for i := range table.Days {
		d := origin.AddDays(i)
		table.Days[i] = Day{
			Date:         d,
			Number:       d.Day,
			OutsideMonth: d.Year != year || d.Month != month,
			Weekend:      IsWeekendColumn(i),
		}
	}
	return table, nil
}

// Index returns the cell index of d, or false when d is not shown.
func (t MonthTable) Index(d Date) (int, bool) {
	for i, day := range t.Days {
		if day.Date == d {
			return i, true
		}
	}
	return 0, false
}
