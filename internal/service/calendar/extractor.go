package calendar

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/caldate"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/datetext"
)

// DefaultEventTitle labels a date line that has no description after it.
const DefaultEventTitle = "Time off"

// ExtractEvents walks raw page lines where every date expression is followed
// by its description. Lines that are not date expressions are reported as
// skipped and extraction carries on with the next line.
func ExtractEvents(lines []string, referenceYear int) calendar.ExtractResponse {
	result := calendar.ExtractResponse{
		Events:  []calendar.Event{},
		Skipped: []calendar.SkippedLine{},
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		r, err := datetext.Parse(line, referenceYear)
		if err != nil {
			slog.Debug("skipping line without date expression", "index", i, "line", line, "error", err)
			result.Skipped = append(result.Skipped, calendar.SkippedLine{Index: i, Text: lines[i], Reason: err.Error()})
			continue
		}

		label := DefaultEventTitle
		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if next != "" && !isDateExpression(next, referenceYear) {
				label = next
				i++
			}
		}

		event, err := calendar.NewEvent(label, r.Start, r.End, Categorize(label), "", calendar.ParseApprovalStatus(label))
		if err != nil {
			result.Skipped = append(result.Skipped, calendar.SkippedLine{Index: i, Text: lines[i], Reason: err.Error()})
			continue
		}
		result.Events = append(result.Events, event)
	}
	return result
}

func isDateExpression(line string, referenceYear int) bool {
	_, err := datetext.Parse(line, referenceYear)
	return err == nil
}

// EventFromRecord converts a structured record. The record's dates and, when
// present, its taxonomy key and color are used as given; only the category
// name goes through Categorize.
func EventFromRecord(rec calendar.EventRecord) (calendar.Event, error) {
	if err := rec.Validate(); err != nil {
		return calendar.Event{}, err
	}
	start, err := caldate.Parse(rec.StartDate)
	if err != nil {
		return calendar.Event{}, err
	}
	end, err := caldate.Parse(rec.EndDate)
	if err != nil {
		return calendar.Event{}, err
	}

	category, ok := calendar.ParseCategory(rec.Category)
	if !ok {
		category = Categorize(rec.CategoryName)
	}

	title := strings.TrimSpace(rec.Title)
	if title == "" {
		title = strings.TrimSpace(rec.CategoryName)
	}
	if title == "" {
		title = DefaultEventTitle
	}

	return calendar.NewEvent(title, start, end, category, calendar.RGBHexColor(rec.Color), calendar.ParseApprovalStatus(rec.Status))
}

// EventsFromRecords converts records, skipping invalid ones.
func EventsFromRecords(records []calendar.EventRecord) ([]calendar.Event, []error) {
	var (
		events []calendar.Event
		errs   []error
	)
	for i, rec := range records {
		e, err := EventFromRecord(rec)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		events = append(events, e)
	}
	return events, errs
}

// BuildStore stores text-derived events before structured ones so that a
// leave present in both keeps its page label.
func BuildStore(textEvents, recordEvents []calendar.Event) *EventStore {
	s := NewEventStore(textEvents...)
	for _, e := range recordEvents {
		s.Add(e)
	}
	return s
}
