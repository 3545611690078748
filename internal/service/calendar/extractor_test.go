package calendar

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEvents(t *testing.T) {
	lines := []string{
		"14 avr. – 18",
		"Congés payés AB-300 Approuvé",
		"",
		"21 mai",
		"RTT (AB-310)",
		"??",
		"28 juil. – 18 août",
		"Congés payés",
		"Jul 12 - 15",
	}

	got := ExtractEvents(lines, 2024)
	require.Len(t, got.Events, 4)

	first := got.Events[0]
	assert.Equal(t, "Congés payés AB-300 Approuvé", first.Title)
	assert.Equal(t, d(2024, time.April, 14), first.Start)
	assert.Equal(t, d(2024, time.April, 18), first.End)
	assert.Equal(t, calendar.CategoryPaidLeave, first.Category)
	assert.Equal(t, calendar.RGBHexColor("#2196F3"), first.Color)
	assert.Equal(t, calendar.StatusApproved, first.Status)

	second := got.Events[1]
	assert.Equal(t, calendar.CategoryRTT, second.Category)
	assert.Equal(t, d(2024, time.May, 21), second.Start)
	assert.Equal(t, second.Start, second.End)
	assert.Equal(t, calendar.StatusPending, second.Status)

	assert.Equal(t, d(2024, time.July, 28), got.Events[2].Start)
	assert.Equal(t, d(2024, time.August, 18), got.Events[2].End)

	// Trailing date line without a description.
	last := got.Events[3]
	assert.Equal(t, DefaultEventTitle, last.Title)
	assert.Equal(t, d(2024, time.July, 12), last.Start)
	assert.Equal(t, d(2024, time.July, 15), last.End)

	require.Len(t, got.Skipped, 1)
	assert.Equal(t, 5, got.Skipped[0].Index)
	assert.Equal(t, "??", got.Skipped[0].Text)
}

func TestExtractEvents_ConsecutiveDateLines(t *testing.T) {
	got := ExtractEvents([]string{"21 mai", "22 mai", "Maladie"}, 2024)
	require.Len(t, got.Events, 2)
	assert.Equal(t, DefaultEventTitle, got.Events[0].Title)
	assert.Equal(t, "Maladie", got.Events[1].Title)
	assert.Equal(t, calendar.CategorySick, got.Events[1].Category)
	assert.Empty(t, got.Skipped)
}

func TestExtractEvents_NeverInventsDates(t *testing.T) {
	got := ExtractEvents([]string{"Congés payés", "??", "avril", "Something unrelated"}, 2024)
	assert.Empty(t, got.Events)
	assert.Len(t, got.Skipped, 4)
}

func TestExtractEvents_Empty(t *testing.T) {
	got := ExtractEvents(nil, 2024)
	assert.NotNil(t, got.Events)
	assert.Empty(t, got.Events)
	assert.Empty(t, got.Skipped)
}

func TestEventFromRecord(t *testing.T) {
	e, err := EventFromRecord(calendar.EventRecord{
		StartDate:    "2024-04-14",
		EndDate:      "2024-04-18",
		CategoryName: "Congés payés",
		Status:       "Approved",
	})
	require.NoError(t, err)
	assert.Equal(t, "Congés payés", e.Title)
	assert.Equal(t, calendar.CategoryPaidLeave, e.Category)
	assert.Equal(t, calendar.CategoryPaidLeave.Color(), e.Color)
	assert.Equal(t, calendar.StatusApproved, e.Status)

	e, err = EventFromRecord(calendar.EventRecord{
		Title:        "Team offsite",
		StartDate:    "2024-06-03",
		EndDate:      "2024-06-03",
		CategoryName: "Congés payés",
		Category:     "holiday",
		Color:        "#123abc",
		Status:       "waiting",
	})
	require.NoError(t, err)
	assert.Equal(t, "Team offsite", e.Title)
	assert.Equal(t, calendar.CategoryHoliday, e.Category)
	assert.Equal(t, calendar.RGBHexColor("#123abc"), e.Color)
	assert.Equal(t, calendar.StatusPending, e.Status)

	_, err = EventFromRecord(calendar.EventRecord{StartDate: "2024-06-03", EndDate: "2024-06-01"})
	assert.Error(t, err)
}

func TestEventsFromRecords_SkipsInvalid(t *testing.T) {
	events, errs := EventsFromRecords([]calendar.EventRecord{
		{StartDate: "2024-01-02", EndDate: "2024-01-03", CategoryName: "Sick"},
		{StartDate: "not a date", EndDate: "2024-01-03"},
	})
	require.Len(t, events, 1)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "record 1")
}

func TestBuildStore_TextEventsWinDuplicates(t *testing.T) {
	text := ExtractEvents([]string{"14 avr. – 18", "Congés payés"}, 2024).Events
	records, errs := EventsFromRecords([]calendar.EventRecord{
		{Title: "Paid leave", StartDate: "2024-04-14", EndDate: "2024-04-18", CategoryName: "Vacation", Status: "Approved"},
		{Title: "Sick", StartDate: "2024-05-02", EndDate: "2024-05-02", CategoryName: "Sick"},
	})
	require.Empty(t, errs)

	s := BuildStore(text, records)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "Congés payés", s.Events()[0].Title)
	assert.Equal(t, "Sick", s.Events()[1].Title)
}
