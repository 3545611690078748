package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/caldate"
)

// Renderer joins month tables with an EventStore into view models. It never
// mutates events.
type Renderer struct {
	now func() time.Time
}

// NewRenderer uses now to mark today's cell; nil means time.Now.
func NewRenderer(now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{now: now}
}

func (r *Renderer) today() caldate.Date {
	return caldate.FromTime(r.now())
}

// Grid builds the 42-cell grid of month with the events covering each cell.
func (r *Renderer) Grid(store *EventStore, year int, month time.Month) (calendar.CalendarGrid, error) {
	table, err := caldate.NewMonthTable(year, month)
	if err != nil {
		return calendar.CalendarGrid{}, err
	}
	today := r.today()

	grid := calendar.CalendarGrid{Year: year, Month: month, StartWeekday: table.StartWeekday}
	for i, day := range table.Days {
		cell := calendar.CalendarCell{
			Date:         day.Date,
			Day:          day.Number,
			OutsideMonth: day.OutsideMonth,
			Weekend:      day.Weekend,
			Today:        !day.OutsideMonth && day.Date == today,
			Events:       store.EventsCovering(day.Date),
		}
		if cell.HasEvents() {
			cell.PrimaryCategory = cell.Events[0].Category
		}
		grid.Cells[i] = cell
	}
	return grid, nil
}

// MonthView renders one month with every covering event as its own line.
func (r *Renderer) MonthView(store *EventStore, year int, month time.Month, locale calendar.Locale) (calendar.MonthView, error) {
	grid, err := r.Grid(store, year, month)
	if err != nil {
		return calendar.MonthView{}, err
	}
	text := textFor(locale)

	view := calendar.MonthView{
		Kind:    calendar.ViewMonth,
		Year:    year,
		Month:   month,
		Title:   text.month(month) + " " + strconv.Itoa(year),
		Headers: headers(text.days),
		Cells:   make([]calendar.CellView, 0, caldate.GridSize),
		Legend:  r.Legend(store, locale),
	}
	for _, cell := range grid.Cells {
		cv := baseCell(cell)
		if cell.HasEvents() {
			tooltips := make([]string, 0, len(cell.Events))
			for _, e := range cell.Events {
				tooltip := fmt.Sprintf("%s - %s", e.Title, text.status(e.Status))
				tooltips = append(tooltips, tooltip)
				cv.Events = append(cv.Events, calendar.EventLine{
					Title:    e.Title,
					Category: e.Category,
					Color:    e.Color,
					Status:   e.Status,
					Tooltip:  tooltip,
				})
			}
			cv.Tooltip = strings.Join(tooltips, "\n")
		}
		view.Cells = append(view.Cells, cv)
	}
	return view, nil
}

// YearView renders twelve compact grids. A cell takes the color of the first
// covering event and lists every covering title in its tooltip.
func (r *Renderer) YearView(store *EventStore, year int, locale calendar.Locale) (calendar.YearView, error) {
	text := textFor(locale)
	view := calendar.YearView{
		Kind:   calendar.ViewYear,
		Year:   year,
		Title:  strconv.Itoa(year),
		Months: make([]calendar.MiniMonth, 0, 12),
		Legend: r.Legend(store, locale),
	}

	for m := time.January; m <= time.December; m++ {
		grid, err := r.Grid(store, year, m)
		if err != nil {
			return calendar.YearView{}, err
		}
		mini := calendar.MiniMonth{
			Month:   m,
			Title:   text.month(m),
			Headers: headers(text.shortDays),
			Cells:   make([]calendar.CellView, 0, caldate.GridSize),
		}
		for _, cell := range grid.Cells {
			cv := baseCell(cell)
			if cell.HasEvents() {
				titles := make([]string, 0, len(cell.Events))
				for _, e := range cell.Events {
					titles = append(titles, e.Title)
				}
				cv.Tooltip = strings.Join(titles, "\n")
			}
			mini.Cells = append(mini.Cells, cv)
		}
		view.Months = append(view.Months, mini)
	}
	return view, nil
}

// Legend lists the categories present in store in taxonomy order, then the
// weekend entry.
func (r *Renderer) Legend(store *EventStore, locale calendar.Locale) []calendar.LegendEntry {
	text := textFor(locale)
	categories := store.AllCategories()
	legend := make([]calendar.LegendEntry, 0, len(categories)+1)
	for _, c := range categories {
		legend = append(legend, calendar.LegendEntry{
			Category: string(c),
			Label:    text.category(c),
			Color:    c.Color(),
		})
	}
	return append(legend, calendar.LegendEntry{
		Category: "weekend",
		Label:    text.weekends,
		Color:    calendar.WeekendColor,
	})
}

// Render draws state from store. Loading and no-data flags are the caller's.
func (r *Renderer) Render(store *EventStore, state calendar.ViewState, locale calendar.Locale) (calendar.CalendarView, error) {
	if err := state.Validate(); err != nil {
		return calendar.CalendarView{}, err
	}
	out := calendar.CalendarView{State: state, Locale: locale}
	if state.Kind == calendar.ViewMonth {
		mv, err := r.MonthView(store, state.Year, state.Month, locale)
		if err != nil {
			return calendar.CalendarView{}, err
		}
		out.Month = &mv
		return out, nil
	}
	yv, err := r.YearView(store, state.Year, locale)
	if err != nil {
		return calendar.CalendarView{}, err
	}
	out.Year = &yv
	return out, nil
}

// baseCell carries the flags shared by both views. Weekend shading gives way
// to events; today's marking does not.
func baseCell(cell calendar.CalendarCell) calendar.CellView {
	cv := calendar.CellView{
		Date:           cell.Date,
		Day:            cell.Day,
		IsOutsideMonth: cell.OutsideMonth,
		IsWeekend:      cell.Weekend && !cell.HasEvents(),
		IsToday:        cell.Today,
	}
	if cell.HasEvents() {
		cv.Category = cell.PrimaryCategory
		cv.Color = cell.Events[0].Color
	}
	return cv
}

func headers(names [7]string) []calendar.HeaderCell {
	out := make([]calendar.HeaderCell, 0, caldate.DaysPerWeek)
	for i, name := range names {
		out = append(out, calendar.HeaderCell{
			Label:     name,
			IsHeader:  true,
			IsWeekend: caldate.IsWeekendColumn(i),
		})
	}
	return out
}
