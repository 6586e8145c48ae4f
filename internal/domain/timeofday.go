package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// TimeOfDay is a wall-clock departure/arrival time, stored as minutes
// since midnight. It serializes as "HH:MM". Comparisons are only
// meaningful within a single service day.
type TimeOfDay int

var timeOfDayRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOfDayRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 23 || min > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return TimeOfDay(h*60 + min), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) After(o TimeOfDay) bool {
	return t > o
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TripDuration is a scheduled trip length in minutes. It serializes in
// the catalog's "Xh Ym" format.
type TripDuration int

var tripDurationRe = regexp.MustCompile(`^(\d+)h\s*(\d+)m$`)

func ParseTripDuration(s string) (TripDuration, error) {
	m := tripDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return TripDuration(h*60 + min), nil
}

func (d TripDuration) Minutes() int {
	return int(d)
}

func (d TripDuration) String() string {
	return fmt.Sprintf("%dh %dm", int(d)/60, int(d)%60)
}

func (d TripDuration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *TripDuration) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	parsed, err := ParseTripDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DayCode returns the three-letter weekday code used in trip schedules.
func DayCode(t time.Time) string {
	return [...]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}[t.Weekday()]
}
