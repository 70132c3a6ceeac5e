package entity

import (
	"fmt"
	"time"
)

// ClockLayout is the wire format for times of day. All times are doctor-local
// wall-clock values; the service performs no time-zone normalization.
const ClockLayout = "15:04"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// MinuteOfDay parses an "HH:MM" value into minutes since midnight.
func MinuteOfDay(value string) (int, error) {
	t, err := time.Parse(ClockLayout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinuteOfDay renders minutes since midnight as "HH:MM".
func FormatMinuteOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DateKey renders the date part of a timestamp, used for date columns and
// deduplication keys.
func DateKey(date time.Time) string {
	return date.Format(DateLayout)
}
