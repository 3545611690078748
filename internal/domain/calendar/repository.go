package calendar

import "context"

// TextLineSource yields the raw text lines of a leave page for one year, in
// page order.
type TextLineSource interface {
	FetchLines(ctx context.Context, year int) ([]string, error)
}

// RecordSource yields structured leave records overlapping one year.
type RecordSource interface {
	FetchRecords(ctx context.Context, year int) ([]EventRecord, error)
}
