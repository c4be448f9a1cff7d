// Package timeclock computes worked hours from the four daily clock events
// (entry, lunch start, lunch end, exit) recorded for an employee.
package timeclock

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DailyTimeEvents carries the four optional wall-clock punches of one
// calendar day, each in 24-hour "HH:MM" form. An empty or malformed value
// counts as a missing punch.
type DailyTimeEvents struct {
	ClockIn    string
	LunchStart string
	LunchEnd   string
	ClockOut   string
}

// Result is the outcome of a daily hours computation. All fields are
// non-negative and TotalHours equals NormalHours plus OvertimeHours.
type Result struct {
	TotalHours    float64 `json:"total_hours"`
	NormalHours   float64 `json:"normal_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

// ParseClock converts an "HH:MM" value to minutes since midnight.
// Anything that does not parse as a 24-hour wall-clock time reports
// ok=false; callers treat that the same as an absent punch.
func ParseClock(value string) (minutes int, ok bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// FormatClock renders minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatHours renders an hour count as "HH:MM", rounding to the nearest
// minute. Reports show both this and the 1-decimal figure.
func FormatHours(hours float64) string {
	if hours < 0 {
		hours = 0
	}
	return FormatClock(int(math.Round(hours * 60)))
}

// Round1 rounds an hour figure to one decimal for display. Accumulation
// always happens on the raw values; rounding is display-only.
func Round1(hours float64) float64 {
	return math.Round(hours*10) / 10
}
