package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:00")
	assert.NoError(t, err)
	assert.Equal(t, TimeOfDay(540), tod)
	assert.Equal(t, "09:00", tod.String())

	tod, err = ParseTimeOfDay("23:59")
	assert.NoError(t, err)
	assert.Equal(t, TimeOfDay(23*60+59), tod)

	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd", "12:5"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestTimeOfDay_After(t *testing.T) {
	morning, _ := ParseTimeOfDay("08:45")
	afternoon, _ := ParseTimeOfDay("12:30")

	assert.True(t, afternoon.After(morning))
	assert.False(t, morning.After(afternoon))
	assert.False(t, morning.After(morning))
}

func TestTimeOfDay_JSON(t *testing.T) {
	tod, _ := ParseTimeOfDay("17:05")
	data, err := json.Marshal(tod)
	assert.NoError(t, err)
	assert.Equal(t, `"17:05"`, string(data))

	var back TimeOfDay
	assert.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, tod, back)
}

func TestParseTripDuration(t *testing.T) {
	d, err := ParseTripDuration("2h 30m")
	assert.NoError(t, err)
	assert.Equal(t, 150, d.Minutes())
	assert.Equal(t, "2h 30m", d.String())

	d, err = ParseTripDuration("1h15m")
	assert.NoError(t, err)
	assert.Equal(t, 75, d.Minutes())
	assert.Equal(t, "1h 15m", d.String())

	for _, bad := range []string{"", "90m", "2h", "h m", "2 hours"} {
		_, err := ParseTripDuration(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestDayCode(t *testing.T) {
	// 2026-08-31 is a Monday.
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "MON", DayCode(monday))
	assert.Equal(t, "SUN", DayCode(monday.AddDate(0, 0, 6)))
}

func TestTrip_RunsOn(t *testing.T) {
	trip := Trip{DaysOfWeek: []string{"MON", "WED", "FRI"}}
	assert.True(t, trip.RunsOn("WED"))
	assert.False(t, trip.RunsOn("SUN"))
}
