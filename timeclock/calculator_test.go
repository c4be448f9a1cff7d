package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		minutes int
		ok      bool
	}{
		{"midnight", "00:00", 0, true},
		{"morning", "08:30", 510, true},
		{"single digit hour", "8:30", 510, true},
		{"end of day", "23:59", 1439, true},
		{"padded whitespace", " 09:15 ", 555, true},
		{"empty", "", 0, false},
		{"hour out of range", "24:00", 0, false},
		{"minute out of range", "10:60", 0, false},
		{"garbage", "ab:cd", 0, false},
		{"trailing seconds", "08:30:00", 0, false},
		{"no separator", "0830", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minutes, ok := ParseClock(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.minutes, minutes)
		})
	}
}

func TestCalculate_FullDayWithLunch(t *testing.T) {
	calc := NewCalculator()

	t.Run("standard eight hour day", func(t *testing.T) {
		res := calc.Calculate(DailyTimeEvents{
			ClockIn:    "08:00",
			LunchStart: "12:00",
			LunchEnd:   "13:00",
			ClockOut:   "17:00",
		})
		assert.Equal(t, 8.0, res.TotalHours)
		assert.Equal(t, 8.0, res.NormalHours)
		assert.Equal(t, 0.0, res.OvertimeHours)
	})

	t.Run("two extra hours become overtime", func(t *testing.T) {
		res := calc.Calculate(DailyTimeEvents{
			ClockIn:    "08:00",
			LunchStart: "12:00",
			LunchEnd:   "13:00",
			ClockOut:   "19:00",
		})
		assert.Equal(t, 10.0, res.TotalHours)
		assert.Equal(t, 8.0, res.NormalHours)
		assert.Equal(t, 2.0, res.OvertimeHours)
	})

	t.Run("segments sum around the break", func(t *testing.T) {
		res := calc.Calculate(DailyTimeEvents{
			ClockIn:    "07:30",
			LunchStart: "11:45",
			LunchEnd:   "12:45",
			ClockOut:   "16:15",
		})
		assert.InDelta(t, 4.25+3.5, res.TotalHours, 1e-9)
		assert.InDelta(t, res.NormalHours+res.OvertimeHours, res.TotalHours, 1e-9)
	})
}

func TestCalculate_MissingEvents(t *testing.T) {
	calc := NewCalculator()

	t.Run("no clock in yields zero result", func(t *testing.T) {
		res := calc.Calculate(DailyTimeEvents{
			LunchStart: "12:00",
			LunchEnd:   "13:00",
			ClockOut:   "17:00",
		})
		assert.Equal(t, Result{}, res)
	})

	t.Run("malformed clock in counts as absent", func(t *testing.T) {
		res := calc.Calculate(DailyTimeEvents{ClockIn: "late", ClockOut: "17:00"})
		assert.Equal(t, Result{}, res)
	})

	t.Run("no lunch recorded counts the full span", func(t *testing.T) {
		res := calc.Calculate(DailyTimeEvents{ClockIn: "08:00", ClockOut: "17:00"})
		assert.Equal(t, 9.0, res.TotalHours)
		assert.Equal(t, 8.0, res.NormalHours)
		assert.Equal(t, 1.0, res.OvertimeHours)
	})

	t.Run("half recorded lunch still counts the full span once", func(t *testing.T) {
		res := calc.Calculate(DailyTimeEvents{
			ClockIn:    "08:00",
			LunchStart: "12:00",
			ClockOut:   "17:00",
		})
		assert.Equal(t, 9.0, res.TotalHours)
	})

	t.Run("day in progress has no worked time yet", func(t *testing.T) {
		res := calc.Calculate(DailyTimeEvents{ClockIn: "08:00"})
		assert.Equal(t, Result{}, res)
	})

	t.Run("morning only when lunch started but day never closed", func(t *testing.T) {
		res := calc.Calculate(DailyTimeEvents{ClockIn: "08:00", LunchStart: "12:30"})
		assert.Equal(t, 4.5, res.TotalHours)
	})
}

func TestCalculate_NegativeSegmentsClampToZero(t *testing.T) {
	calc := NewCalculator()

	t.Run("lunch before entry", func(t *testing.T) {
		res := calc.Calculate(DailyTimeEvents{
			ClockIn:    "09:00",
			LunchStart: "08:00",
			LunchEnd:   "13:00",
			ClockOut:   "17:00",
		})
		assert.Equal(t, 4.0, res.TotalHours)
		assert.GreaterOrEqual(t, res.TotalHours, 0.0)
	})

	t.Run("exit before lunch end", func(t *testing.T) {
		res := calc.Calculate(DailyTimeEvents{
			ClockIn:    "08:00",
			LunchStart: "12:00",
			LunchEnd:   "13:00",
			ClockOut:   "12:30",
		})
		assert.Equal(t, 4.0, res.TotalHours)
	})

	t.Run("exit before entry with no lunch", func(t *testing.T) {
		res := calc.Calculate(DailyTimeEvents{ClockIn: "17:00", ClockOut: "08:00"})
		assert.Equal(t, 0.0, res.TotalHours)
	})
}

func TestCalculate_ThresholdConfiguration(t *testing.T) {
	t.Run("zero value calculator falls back to eight hours", func(t *testing.T) {
		var calc Calculator
		res := calc.Calculate(DailyTimeEvents{ClockIn: "08:00", ClockOut: "18:00"})
		assert.Equal(t, 10.0, res.TotalHours)
		assert.Equal(t, 8.0, res.NormalHours)
		assert.Equal(t, 2.0, res.OvertimeHours)
	})

	t.Run("six hour shift threshold", func(t *testing.T) {
		calc := Calculator{DailyThresholdHours: 6}
		res := calc.Calculate(DailyTimeEvents{ClockIn: "08:00", ClockOut: "16:00"})
		assert.Equal(t, 8.0, res.TotalHours)
		assert.Equal(t, 6.0, res.NormalHours)
		assert.Equal(t, 2.0, res.OvertimeHours)
	})
}

func TestCalculate_ToleranceAbsorbsSmallExcess(t *testing.T) {
	calc := Calculator{DailyThresholdHours: 8, ToleranceMinutes: 10}

	t.Run("excess within tolerance stays normal", func(t *testing.T) {
		res := calc.Calculate(DailyTimeEvents{
			ClockIn:    "08:00",
			LunchStart: "12:00",
			LunchEnd:   "13:00",
			ClockOut:   "17:08",
		})
		assert.InDelta(t, 8.0+8.0/60.0, res.TotalHours, 1e-9)
		assert.Equal(t, res.TotalHours, res.NormalHours)
		assert.Equal(t, 0.0, res.OvertimeHours)
	})

	t.Run("excess past tolerance is all overtime", func(t *testing.T) {
		res := calc.Calculate(DailyTimeEvents{
			ClockIn:    "08:00",
			LunchStart: "12:00",
			LunchEnd:   "13:00",
			ClockOut:   "17:15",
		})
		assert.Equal(t, 8.0, res.NormalHours)
		assert.InDelta(t, 0.25, res.OvertimeHours, 1e-9)
	})

	t.Run("no tolerance pays every extra minute", func(t *testing.T) {
		strict := NewCalculator()
		res := strict.Calculate(DailyTimeEvents{ClockIn: "08:00", ClockOut: "16:05"})
		assert.InDelta(t, 5.0/60.0, res.OvertimeHours, 1e-9)
	})
}

func TestCalculate_TotalAlwaysSplitsExactly(t *testing.T) {
	calc := NewCalculator()
	events := []DailyTimeEvents{
		{ClockIn: "08:00", LunchStart: "12:00", LunchEnd: "13:00", ClockOut: "17:00"},
		{ClockIn: "06:15", LunchStart: "11:00", LunchEnd: "11:30", ClockOut: "19:45"},
		{ClockIn: "08:00", ClockOut: "17:00"},
		{ClockIn: "09:00", LunchStart: "08:00", LunchEnd: "13:00", ClockOut: "17:00"},
		{ClockIn: "23:00", ClockOut: "01:00"},
		{},
	}
	for _, ev := range events {
		res := calc.Calculate(ev)
		require.InDelta(t, res.TotalHours, res.NormalHours+res.OvertimeHours, 1e-9)
		require.GreaterOrEqual(t, res.TotalHours, 0.0)
		require.GreaterOrEqual(t, res.NormalHours, 0.0)
		require.GreaterOrEqual(t, res.OvertimeHours, 0.0)
	}
}

func TestWorkedSoFar(t *testing.T) {
	at := func(hhmm string) time.Time {
		tm, err := time.Parse("15:04", hhmm)
		require.NoError(t, err)
		return time.Date(2025, 3, 10, tm.Hour(), tm.Minute(), 0, 0, time.UTC)
	}

	t.Run("mid morning", func(t *testing.T) {
		got := WorkedSoFar(DailyTimeEvents{ClockIn: "08:00"}, at("10:30"))
		assert.Equal(t, 2.5, got)
	})

	t.Run("during open lunch break nothing accrues", func(t *testing.T) {
		got := WorkedSoFar(DailyTimeEvents{ClockIn: "08:00", LunchStart: "12:00"}, at("12:40"))
		assert.Equal(t, 4.0, got)
	})

	t.Run("after lunch resumes counting", func(t *testing.T) {
		got := WorkedSoFar(DailyTimeEvents{
			ClockIn:    "08:00",
			LunchStart: "12:00",
			LunchEnd:   "13:00",
		}, at("15:00"))
		assert.Equal(t, 6.0, got)
	})

	t.Run("closed day matches the calculator", func(t *testing.T) {
		ev := DailyTimeEvents{ClockIn: "08:00", LunchStart: "12:00", LunchEnd: "13:00", ClockOut: "17:00"}
		got := WorkedSoFar(ev, at("23:00"))
		assert.Equal(t, NewCalculator().Calculate(ev).TotalHours, got)
	})

	t.Run("no clock in", func(t *testing.T) {
		assert.Equal(t, 0.0, WorkedSoFar(DailyTimeEvents{}, at("12:00")))
	})
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "08:00", FormatHours(8))
	assert.Equal(t, "09:30", FormatHours(9.5))
	assert.Equal(t, "00:20", FormatHours(1.0/3.0))
	assert.Equal(t, "00:00", FormatHours(-2))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 7.3, Round1(7.333333))
	assert.Equal(t, 2.8, Round1(2.75))
	assert.Equal(t, 0.0, Round1(0))
}
