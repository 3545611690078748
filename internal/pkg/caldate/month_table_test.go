package caldate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMonthTable_Geometry(t *testing.T) {
	for year := 1999; year <= 2031; year++ {
		for month := time.January; month <= time.December; month++ {
			table, err := NewMonthTable(year, month)
			require.NoError(t, err)

			first := New(year, month, 1)
			assert.Len(t, table.Days, GridSize)
			assert.Equal(t, MondayIndex(first.Weekday()), table.StartWeekday)
			assert.Equal(t, first, table.Days[table.StartWeekday].Date, "%d-%02d", year, month)

			// Column index must agree with the real weekday of every cell.
			for i, day := range table.Days {
				assert.Equal(t, i%DaysPerWeek, MondayIndex(day.Date.Weekday()))
				assert.Equal(t, i%DaysPerWeek >= 5, day.Weekend)
			}

			// Exactly one contiguous run of in-month cells.
			runs, inside := 0, 0
			for i, day := range table.Days {
				if !day.OutsideMonth {
					inside++
					if i == 0 || table.Days[i-1].OutsideMonth {
						runs++
					}
				}
			}
			assert.Equal(t, 1, runs)
			assert.Equal(t, DaysIn(year, month), inside)
		}
	}
}

func TestNewMonthTable_Padding(t *testing.T) {
	// April 2024 starts on a Monday.
	table, err := NewMonthTable(2024, time.April)
	require.NoError(t, err)
	assert.Equal(t, 0, table.StartWeekday)
	assert.Equal(t, 1, table.Days[0].Number)
	assert.Equal(t, 30, table.DaysInMonth)
	assert.True(t, table.Days[30].OutsideMonth)
	assert.Equal(t, New(2024, time.May, 1), table.Days[30].Date)

	// September 2024 starts on a Sunday: six days of August lead.
	table, err = NewMonthTable(2024, time.September)
	require.NoError(t, err)
	assert.Equal(t, 6, table.StartWeekday)
	assert.Equal(t, New(2024, time.August, 26), table.Days[0].Date)
	assert.True(t, table.Days[0].OutsideMonth)

	// January pads with December of the previous year.
	table, err = NewMonthTable(2021, time.January)
	require.NoError(t, err)
	assert.Equal(t, New(2020, time.December, 28), table.Days[0].Date)
}

func TestNewMonthTable_InvalidArguments(t *testing.T) {
	_, err := NewMonthTable(0, time.January)
	assert.True(t, errors.Is(err, ErrInvalidYear))

	_, err = NewMonthTable(10000, time.January)
	assert.True(t, errors.Is(err, ErrInvalidYear))

	_, err = NewMonthTable(2024, time.Month(13))
	assert.True(t, errors.Is(err, ErrInvalidMonth))

	_, err = NewMonthTable(2024, time.Month(0))
	assert.True(t, errors.Is(err, ErrInvalidMonth))
}

func TestMonthTable_Index(t *testing.T) {
	table, err := NewMonthTable(2024, time.February)
	require.NoError(t, err)

	i, ok := table.Index(New(2024, time.February, 29))
	require.True(t, ok)
	assert.Equal(t, 29, table.Days[i].Number)

	_, ok = table.Index(New(2024, time.June, 1))
	assert.False(t, ok)
}
