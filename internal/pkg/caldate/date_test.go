package caldate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTime_IgnoresTimeOfDay(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		paris = time.FixedZone("CET", 3600)
	}
	morning := time.Date(2024, 4, 14, 0, 0, 1, 0, paris)
	evening := time.Date(2024, 4, 14, 23, 59, 59, 0, paris)

	assert.Equal(t, FromTime(morning), FromTime(evening))
	assert.Equal(t, New(2024, time.April, 14), FromTime(evening))
}

func TestParse(t *testing.T) {
	cases := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{"2024-04-14", New(2024, time.April, 14), false},
		{"2024-12-31T23:30:00+02:00", New(2024, time.December, 31), false},
		{"2024-02-30", Date{}, true},
		{"14/04/2024", Date{}, true},
		{"", Date{}, true},
	}
	for _, c := range cases {
		got, err := Parse(c.input)
		if c.wantErr {
			assert.Error(t, err, c.input)
			continue
		}
		require.NoError(t, err, c.input)
		assert.Equal(t, c.want, got)
	}
}

func TestDate_CompareAndBetween(t *testing.T) {
	a := New(2024, time.July, 28)
	b := New(2024, time.August, 18)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(New(2024, time.July, 28)))
	assert.True(t, New(2024, time.August, 1).Between(a, b))
	assert.True(t, a.Between(a, b))
	assert.True(t, b.Between(a, b))
	assert.False(t, New(2024, time.August, 19).Between(a, b))
}

func TestDate_AddDaysAndValid(t *testing.T) {
	assert.Equal(t, New(2025, time.January, 2), New(2024, time.December, 31).AddDays(2))
	assert.Equal(t, New(2024, time.February, 29), New(2024, time.March, 1).AddDays(-1))

	assert.True(t, New(2024, time.February, 29).Valid())
	assert.False(t, New(2023, time.February, 29).Valid())
	assert.False(t, New(2024, time.April, 31).Valid())
	assert.False(t, New(0, time.January, 1).Valid())
}

func TestDate_JSON(t *testing.T) {
	payload, err := json.Marshal(struct {
		Start Date `json:"start"`
	}{New(2024, time.May, 21)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-05-21"}`, string(payload))

	var decoded struct {
		Start Date `json:"start"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, New(2024, time.May, 21), decoded.Start)
}
