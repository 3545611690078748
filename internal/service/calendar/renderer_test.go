package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/caldate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func renderFixture(t *testing.T) (*Renderer, *EventStore, calendar.Event, calendar.Event) {
	t.Helper()
	summer := mustEvent(t, "Été", d(2024, time.July, 28), d(2024, time.August, 18), calendar.CategoryPaidLeave)
	assumption := mustEvent(t, "Assomption", d(2024, time.August, 15), d(2024, time.August, 15), calendar.CategoryHoliday)
	sick := mustEvent(t, "Maladie", d(2024, time.May, 4), d(2024, time.May, 4), calendar.CategorySick)
	store := NewEventStore(summer, assumption, sick)
	r := NewRenderer(fixedClock(time.Date(2024, time.May, 21, 9, 30, 0, 0, time.UTC)))
	return r, store, summer, assumption
}

func TestRenderer_MonthView(t *testing.T) {
	r, store, _, _ := renderFixture(t)

	view, err := r.MonthView(store, 2024, time.May, calendar.LocaleFR)
	require.NoError(t, err)
	assert.Equal(t, calendar.ViewMonth, view.Kind)
	assert.Equal(t, "mai 2024", view.Title)
	require.Len(t, view.Headers, 7)
	assert.Equal(t, "lundi", view.Headers[0].Label)
	assert.True(t, view.Headers[6].IsWeekend)
	assert.False(t, view.Headers[4].IsWeekend)
	require.Len(t, view.Cells, caldate.GridSize)

	// May 2024 starts on a Wednesday.
	assert.True(t, view.Cells[0].IsOutsideMonth)
	assert.Equal(t, 29, view.Cells[0].Day)
	assert.Equal(t, 1, view.Cells[2].Day)
	assert.False(t, view.Cells[2].IsOutsideMonth)

	today := view.Cells[22]
	assert.Equal(t, d(2024, time.May, 21), today.Date)
	assert.True(t, today.IsToday)

	saturday := view.Cells[5]
	assert.Equal(t, d(2024, time.May, 4), saturday.Date)
	assert.False(t, saturday.IsWeekend, "events suppress weekend shading")
	assert.Equal(t, calendar.CategorySick, saturday.Category)
	assert.Equal(t, calendar.CategorySick.Color(), saturday.Color)
	require.Len(t, saturday.Events, 1)
	assert.Equal(t, "Maladie - Approuvé", saturday.Events[0].Tooltip)

	sunday := view.Cells[6]
	assert.True(t, sunday.IsWeekend)
	assert.Empty(t, sunday.Events)
}

func TestRenderer_MonthViewStacksEvents(t *testing.T) {
	r, store, summer, assumption := renderFixture(t)

	view, err := r.MonthView(store, 2024, time.August, calendar.LocaleEN)
	require.NoError(t, err)
	cell := view.Cells[17]
	assert.Equal(t, d(2024, time.August, 15), cell.Date)
	require.Len(t, cell.Events, 2)
	assert.Equal(t, summer.Title, cell.Events[0].Title)
	assert.Equal(t, assumption.Title, cell.Events[1].Title)
	assert.Equal(t, "Été - Approved\nAssomption - Approved", cell.Tooltip)
}

func TestRenderer_YearViewFirstEventColorsCell(t *testing.T) {
	r, store, summer, _ := renderFixture(t)

	view, err := r.YearView(store, 2024, calendar.LocaleEN)
	require.NoError(t, err)
	assert.Equal(t, calendar.ViewYear, view.Kind)
	assert.Equal(t, "2024", view.Title)
	require.Len(t, view.Months, 12)

	august := view.Months[7]
	assert.Equal(t, time.August, august.Month)
	assert.Equal(t, "August", august.Title)
	assert.Equal(t, "Mon", august.Headers[0].Label)

	cell := august.Cells[17]
	assert.Equal(t, d(2024, time.August, 15), cell.Date)
	assert.Equal(t, summer.Category, cell.Category)
	assert.Equal(t, summer.Color, cell.Color)
	assert.Equal(t, "Été\nAssomption", cell.Tooltip)
	assert.Empty(t, cell.Events)
}

func TestRenderer_OutsideMonthCellsCarryEvents(t *testing.T) {
	r := NewRenderer(fixedClock(time.Date(2024, time.April, 30, 12, 0, 0, 0, time.UTC)))
	store := NewEventStore(mustEvent(t, "RTT", d(2024, time.April, 30), d(2024, time.April, 30), calendar.CategoryRTT))

	grid, err := r.Grid(store, 2024, time.May)
	require.NoError(t, err)
	cell := grid.Cells[1]
	assert.True(t, cell.OutsideMonth)
	assert.Len(t, cell.Events, 1)
	assert.Equal(t, calendar.CategoryRTT, cell.PrimaryCategory)
	assert.False(t, cell.Today, "today is only marked inside the displayed month")

	april, err := r.Grid(store, 2024, time.April)
	require.NoError(t, err)
	table, err := caldate.NewMonthTable(2024, time.April)
	require.NoError(t, err)
	idx, ok := table.Index(d(2024, time.April, 30))
	require.True(t, ok)
	assert.True(t, april.Cells[idx].Today)
	assert.False(t, april.Cells[idx].OutsideMonth)
}

func TestRenderer_Legend(t *testing.T) {
	r, store, _, _ := renderFixture(t)

	legend := r.Legend(store, calendar.LocaleDE)
	require.Len(t, legend, 4)
	assert.Equal(t, calendar.LegendEntry{Category: "paid_leave", Label: "Bezahlter Urlaub", Color: "#2196F3"}, legend[0])
	assert.Equal(t, "holiday", legend[1].Category)
	assert.Equal(t, "sick", legend[2].Category)
	assert.Equal(t, calendar.LegendEntry{Category: "weekend", Label: "Wochenenden", Color: calendar.WeekendColor}, legend[3])

	empty := r.Legend(nil, calendar.LocaleEN)
	require.Len(t, empty, 1)
	assert.Equal(t, "Weekends", empty[0].Label)
}

func TestRenderer_EmptyStoreRendersEmptyGrid(t *testing.T) {
	r := NewRenderer(nil)
	view, err := r.MonthView(NewEventStore(), 2030, time.February, calendar.LocaleEN)
	require.NoError(t, err)
	require.Len(t, view.Cells, caldate.GridSize)
	for _, c := range view.Cells {
		assert.Empty(t, c.Events)
		assert.Empty(t, c.Category)
	}
}

func TestRenderer_Render(t *testing.T) {
	r, store, _, _ := renderFixture(t)

	out, err := r.Render(store, calendar.ViewState{Kind: calendar.ViewMonth, Year: 2024, Month: time.August}, calendar.LocaleEN)
	require.NoError(t, err)
	require.NotNil(t, out.Month)
	assert.Nil(t, out.Year)

	out, err = r.Render(store, calendar.ViewState{Kind: calendar.ViewYear, Year: 2024, Month: time.August}, calendar.LocaleEN)
	require.NoError(t, err)
	require.NotNil(t, out.Year)
	assert.Nil(t, out.Month)

	_, err = r.Render(store, calendar.ViewState{Kind: calendar.ViewYear, Year: 0, Month: time.August}, calendar.LocaleEN)
	assert.True(t, errors.Is(err, calendar.ErrInvalidYear))
}

func TestRenderer_UnknownLocaleFallsBackToEnglish(t *testing.T) {
	r := NewRenderer(nil)
	view, err := r.MonthView(nil, 2024, time.March, "es")
	require.NoError(t, err)
	assert.Equal(t, "March 2024", view.Title)
}
