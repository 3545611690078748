package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLineSource struct {
	lines map[int][]string
	err   error
}

func (f *fakeLineSource) FetchLines(ctx context.Context, year int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lines[year], nil
}

type fakeRecordSource struct {
	records map[int][]calendar.EventRecord
	err     error
}

func (f *fakeRecordSource) FetchRecords(ctx context.Context, year int) ([]calendar.EventRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records[year], nil
}

var errUpstream = errors.New("upstream unavailable")

func TestYearLoader_MergesSources(t *testing.T) {
	lines := &fakeLineSource{lines: map[int][]string{
		2024: {"14 avr. – 18", "Congés payés", "??", "21 mai", "RTT"},
	}}
	records := &fakeRecordSource{records: map[int][]calendar.EventRecord{
		2024: {
			{Title: "Paid leave", StartDate: "2024-04-14", EndDate: "2024-04-18", CategoryName: "Vacation"},
			{Title: "Sick", StartDate: "2024-09-02", EndDate: "2024-09-03", CategoryName: "Sick", Color: "#000000"},
			{StartDate: "broken", EndDate: "2024-09-03"},
		},
	}}

	store, err := NewYearLoader(lines, records).Load(context.Background(), 2024)
	require.NoError(t, err)
	require.Equal(t, 3, store.Len())
	events := store.Events()
	assert.Equal(t, "Congés payés", events[0].Title)
	assert.Equal(t, "RTT", events[1].Title)
	assert.Equal(t, calendar.RGBHexColor("#000000"), events[2].Color)
	assert.Len(t, store.EventsCovering(d(2024, time.September, 3)), 1)
}

func TestYearLoader_OneSourceFailing(t *testing.T) {
	lines := &fakeLineSource{err: errUpstream}
	records := &fakeRecordSource{records: map[int][]calendar.EventRecord{
		2024: {{StartDate: "2024-01-02", EndDate: "2024-01-02", CategoryName: "RTT"}},
	}}

	store, err := NewYearLoader(lines, records).Load(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestYearLoader_AllSourcesFailing(t *testing.T) {
	loader := NewYearLoader(&fakeLineSource{err: errUpstream}, &fakeRecordSource{err: errUpstream})

	store, err := loader.Load(context.Background(), 2024)
	require.Error(t, err)
	assert.True(t, errors.Is(err, calendar.ErrDataFetch))
	assert.True(t, errors.Is(err, errUpstream))
	require.NotNil(t, store)
	assert.Equal(t, 0, store.Len())
}

func TestYearLoader_NoSources(t *testing.T) {
	store, err := NewYearLoader(nil, nil).Load(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}
