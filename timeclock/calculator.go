package timeclock

import (
	"math"
	"time"
)

// DefaultDailyThresholdHours splits a workday into normal and overtime
// hours when no shift configuration says otherwise.
const DefaultDailyThresholdHours = 8.0

// Calculator turns one day's clock events into worked hours. The zero
// value applies the default 8-hour threshold and no tolerance; shift
// configuration overrides both per employee.
type Calculator struct {
	// DailyThresholdHours is where normal hours end and overtime begins.
	DailyThresholdHours float64
	// ToleranceMinutes absorbs small excesses over the threshold into
	// normal hours instead of paying them as overtime.
	ToleranceMinutes int
}

// NewCalculator returns a Calculator with the default threshold.
func NewCalculator() Calculator {
	return Calculator{DailyThresholdHours: DefaultDailyThresholdHours}
}

func (c Calculator) threshold() float64 {
	if c.DailyThresholdHours > 0 {
		return c.DailyThresholdHours
	}
	return DefaultDailyThresholdHours
}

// Calculate computes total, normal and overtime hours for one day.
//
// A day with no clock-in has no worked time. Morning and afternoon
// segments are measured separately around the lunch break, each clamped
// at zero so an out-of-order punch never subtracts time. When the break
// is not fully recorded but entry and exit both are, the full span
// between them counts instead; a day without a registered break is not
// penalized for it. The function is total: it never panics and never
// returns an error, treating malformed input as absent.
func (c Calculator) Calculate(ev DailyTimeEvents) Result {
	clockIn, ok := ParseClock(ev.ClockIn)
	if !ok {
		return Result{}
	}

	lunchStart, hasLunchStart := ParseClock(ev.LunchStart)
	lunchEnd, hasLunchEnd := ParseClock(ev.LunchEnd)
	clockOut, hasClockOut := ParseClock(ev.ClockOut)

	var workedMinutes int
	if (!hasLunchStart || !hasLunchEnd) && hasClockOut {
		// Incomplete break, complete day: count the full span once.
		workedMinutes = clampMinutes(clockOut - clockIn)
	} else {
		if hasLunchStart {
			workedMinutes += clampMinutes(lunchStart - clockIn)
		}
		if hasLunchEnd && hasClockOut {
			workedMinutes += clampMinutes(clockOut - lunchEnd)
		}
	}

	return c.split(workedMinutes)
}

// split divides worked minutes into normal and overtime hours at the
// daily threshold, forgiving excesses within the tolerance window.
func (c Calculator) split(workedMinutes int) Result {
	total := float64(workedMinutes) / 60.0
	threshold := c.threshold()

	excessMinutes := float64(workedMinutes) - threshold*60
	if c.ToleranceMinutes > 0 && excessMinutes > 0 && excessMinutes <= float64(c.ToleranceMinutes) {
		return Result{TotalHours: total, NormalHours: total}
	}

	return Result{
		TotalHours:    total,
		NormalHours:   math.Min(total, threshold),
		OvertimeHours: math.Max(0, total-threshold),
	}
}

// WorkedSoFar reports the hours an in-progress day has accumulated up to
// now. It exists for the live dashboard figure; closed days go through
// Calculate. Before lunch the running time is capped at the recorded
// lunch start, during an open break nothing accrues.
func WorkedSoFar(ev DailyTimeEvents, now time.Time) float64 {
	clockIn, ok := ParseClock(ev.ClockIn)
	if !ok {
		return 0
	}
	if _, closed := ParseClock(ev.ClockOut); closed {
		return Calculator{}.Calculate(ev).TotalHours
	}

	current := now.Hour()*60 + now.Minute()
	lunchStart, hasLunchStart := ParseClock(ev.LunchStart)
	lunchEnd, hasLunchEnd := ParseClock(ev.LunchEnd)

	var workedMinutes int
	switch {
	case hasLunchStart && hasLunchEnd:
		workedMinutes = clampMinutes(lunchStart-clockIn) + clampMinutes(current-lunchEnd)
	case hasLunchStart:
		workedMinutes = clampMinutes(min(current, lunchStart) - clockIn)
	default:
		workedMinutes = clampMinutes(current - clockIn)
	}
	return float64(workedMinutes) / 60.0
}

func clampMinutes(d int) int {
	if d < 0 {
		return 0
	}
	return d
}
