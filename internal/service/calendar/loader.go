package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"golang.org/x/sync/errgroup"
)

// YearLoader fetches one year of leave from the configured sources and builds
// a fresh EventStore. Either source may be nil.
type YearLoader struct {
	lines   calendar.TextLineSource
	records calendar.RecordSource
}

func NewYearLoader(lines calendar.TextLineSource, records calendar.RecordSource) *YearLoader {
	return &YearLoader{lines: lines, records: records}
}

// Load queries both sources concurrently. A failing source only drops its own
// events; when every configured source fails the error wraps
// calendar.ErrDataFetch and the returned store is empty.
func (l *YearLoader) Load(ctx context.Context, year int) (*EventStore, error) {
	var (
		textEvents   []calendar.Event
		recordEvents []calendar.Event
		linesErr     error
		recordsErr   error
		configured   int
	)

	// Sources report failures through their own error variables so one
	// failing fetch does not cancel the other.
	g, gctx := errgroup.WithContext(ctx)
	if l.lines != nil {
		configured++
		g.Go(func() error {
			lines, err := l.lines.FetchLines(gctx, year)
			if err != nil {
				linesErr = fmt.Errorf("fetch text lines: %w", err)
				return nil
			}
			extracted := ExtractEvents(lines, year)
			if len(extracted.Skipped) > 0 {
				slog.Debug("skipped unparseable leave lines", "year", year, "skipped", len(extracted.Skipped))
			}
			textEvents = extracted.Events
			return nil
		})
	}
	if l.records != nil {
		configured++
		g.Go(func() error {
			records, err := l.records.FetchRecords(gctx, year)
			if err != nil {
				recordsErr = fmt.Errorf("fetch leave records: %w", err)
				return nil
			}
			events, errs := EventsFromRecords(records)
			for _, err := range errs {
				slog.Debug("skipped invalid leave record", "year", year, "error", err)
			}
			recordEvents = events
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range []error{linesErr, recordsErr} {
		if err != nil {
			failed++
			slog.Warn("leave source failed", "year", year, "error", err)
		}
	}
	if configured > 0 && failed == configured {
		return NewEventStore(), fmt.Errorf("%w for %d: %w", calendar.ErrDataFetch, year, errors.Join(linesErr, recordsErr))
	}

	return BuildStore(textEvents, recordEvents), nil
}
