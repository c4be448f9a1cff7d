package payroll

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademilsodream/tcponto-app-sub002/timeclock"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fullDay(day time.Time) DayRecord {
	return DayRecord{Date: day, Events: timeclock.DailyTimeEvents{
		ClockIn:    "08:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
		ClockOut:   "17:00",
	}}
}

func TestGenerate_SingleEmployee(t *testing.T) {
	period := Period{Start: date(2025, 3, 1), End: date(2025, 3, 31)}
	emp := Employee{ID: uuid.New(), Name: "Ana Souza", Email: "ana@example.com",
		HourlyRate: money("20"), OvertimeRate: money("30")}

	t.Run("normal and overtime split", func(t *testing.T) {
		inputs := []Input{{
			Employee: emp,
			Records: []DayRecord{
				fullDay(date(2025, 3, 3)),
				{Date: date(2025, 3, 4), Events: timeclock.DailyTimeEvents{
					ClockIn: "08:00", LunchStart: "12:00", LunchEnd: "13:00", ClockOut: "19:00",
				}},
			},
		}}

		items, summary := Generate(inputs, period)
		require.Len(t, items, 1)

		item := items[0]
		assert.Equal(t, 2, item.DaysWorked)
		assert.Equal(t, 18.0, item.TotalHoursRaw)
		assert.Equal(t, 16.0, item.NormalHoursRaw)
		assert.Equal(t, 2.0, item.OvertimeHoursRaw)
		assert.Equal(t, "320.00", item.NormalPay.StringFixed(2))
		assert.Equal(t, "60.00", item.OvertimePay.StringFixed(2))
		assert.Equal(t, "380.00", item.TotalPay.StringFixed(2))

		assert.Equal(t, 1, summary.EmployeeCount)
		assert.Equal(t, 18.0, summary.GrandTotalHoursRaw)
		assert.Equal(t, 2.0, summary.GrandTotalOvertimeHoursRaw)
		assert.Equal(t, "380.00", summary.GrandTotalPay.StringFixed(2))
	})

	t.Run("overtime rate falls back to hourly rate", func(t *testing.T) {
		flat := emp
		flat.OvertimeRate = decimal.Zero
		inputs := []Input{{
			Employee: flat,
			Records: []DayRecord{{Date: date(2025, 3, 5), Events: timeclock.DailyTimeEvents{
				ClockIn: "08:00", ClockOut: "18:00",
			}}},
		}}

		items, _ := Generate(inputs, period)
		require.Len(t, items, 1)
		assert.Equal(t, "160.00", items[0].NormalPay.StringFixed(2))
		assert.Equal(t, "40.00", items[0].OvertimePay.StringFixed(2))
	})

	t.Run("employee with no records gets a zero line", func(t *testing.T) {
		items, summary := Generate([]Input{{Employee: emp}}, period)
		require.Len(t, items, 1)
		assert.Equal(t, 0.0, items[0].TotalHoursRaw)
		assert.Equal(t, "0.00", items[0].TotalPay.StringFixed(2))
		assert.Equal(t, 1, summary.EmployeeCount)
		assert.Equal(t, "0.00", summary.GrandTotalPay.StringFixed(2))
	})
}

func TestGenerate_PeriodIsInclusiveAndDateOnly(t *testing.T) {
	emp := Employee{ID: uuid.New(), Name: "Bruno Lima", HourlyRate: money("10")}
	period := Period{
		Start: time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 12, 1, 0, 0, 0, time.UTC),
	}
	inputs := []Input{{
		Employee: emp,
		Records: []DayRecord{
			fullDay(date(2025, 3, 9)),
			fullDay(time.Date(2025, 3, 10, 6, 30, 0, 0, time.UTC)),
			fullDay(date(2025, 3, 11)),
			fullDay(time.Date(2025, 3, 12, 22, 0, 0, 0, time.UTC)),
			fullDay(date(2025, 3, 13)),
		},
	}}

	items, _ := Generate(inputs, period)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].DaysWorked)
	assert.Equal(t, 24.0, items[0].TotalHoursRaw)
}

func TestGenerate_TwoStageRounding(t *testing.T) {
	// 7h20 of normal time at rate 10 prices at 73.333..., which the
	// display contract rounds per employee before summing.
	sevenTwenty := func(day time.Time) DayRecord {
		return DayRecord{Date: day, Events: timeclock.DailyTimeEvents{
			ClockIn: "08:00", LunchStart: "12:00", LunchEnd: "13:00", ClockOut: "16:20",
		}}
	}
	period := Period{Start: date(2025, 3, 1), End: date(2025, 3, 31)}
	rate := money("10")

	t.Run("part rounds to 73.33", func(t *testing.T) {
		inputs := []Input{{
			Employee: Employee{ID: uuid.New(), HourlyRate: rate},
			Records:  []DayRecord{sevenTwenty(date(2025, 3, 3))},
		}}
		items, _ := Generate(inputs, period)
		require.Len(t, items, 1)
		assert.InDelta(t, 7.0+20.0/60.0, items[0].NormalHoursRaw, 1e-9)
		assert.Equal(t, "73.33", items[0].NormalPay.StringFixed(2))
		assert.Equal(t, "73.33", items[0].TotalPay.StringFixed(2))
	})

	t.Run("grand total sums rounded lines, not raw hours", func(t *testing.T) {
		inputs := []Input{
			{Employee: Employee{ID: uuid.New(), HourlyRate: rate}, Records: []DayRecord{sevenTwenty(date(2025, 3, 3))}},
			{Employee: Employee{ID: uuid.New(), HourlyRate: rate}, Records: []DayRecord{sevenTwenty(date(2025, 3, 4))}},
			{Employee: Employee{ID: uuid.New(), HourlyRate: rate}, Records: []DayRecord{sevenTwenty(date(2025, 3, 5))}},
		}
		items, summary := Generate(inputs, period)
		require.Len(t, items, 3)

		sum := decimal.Zero
		for _, item := range items {
			assert.Equal(t, "73.33", item.TotalPay.StringFixed(2))
			sum = sum.Add(item.TotalPay)
		}
		assert.Equal(t, "219.99", summary.GrandTotalPay.StringFixed(2))
		assert.True(t, summary.GrandTotalPay.Equal(sum))

		// A re-derivation from the raw grand-total hours would price
		// 22h at 220.00. The contract keeps the per-line rounding.
		reDerived := decimal.NewFromFloat(summary.GrandTotalHoursRaw).Mul(rate).Round(2)
		assert.Equal(t, "220.00", reDerived.StringFixed(2))
		assert.False(t, summary.GrandTotalPay.Equal(reDerived))
	})
}

func TestGenerate_Idempotent(t *testing.T) {
	period := Period{Start: date(2025, 3, 1), End: date(2025, 3, 31)}
	inputs := []Input{
		{
			Employee: Employee{ID: uuid.MustParse("5f3c3f64-46a2-4d29-9a2b-0a8c8f2d9f01"),
				Name: "Carla Dias", HourlyRate: money("17.25"), OvertimeRate: money("25.88")},
			Records: []DayRecord{
				fullDay(date(2025, 3, 3)),
				{Date: date(2025, 3, 4), Events: timeclock.DailyTimeEvents{ClockIn: "07:10", ClockOut: "18:43"}},
			},
		},
		{
			Employee: Employee{ID: uuid.MustParse("9d1f7b32-6f3a-4a15-8c25-67d6dd3be702"),
				Name: "Davi Rocha", HourlyRate: money("31.40")},
			Records: []DayRecord{fullDay(date(2025, 3, 3))},
		},
	}

	firstItems, firstSummary := Generate(inputs, period)
	secondItems, secondSummary := Generate(inputs, period)

	assert.Equal(t, firstItems, secondItems)
	assert.Equal(t, firstSummary, secondSummary)
}

func TestGenerate_EmptyInputs(t *testing.T) {
	items, summary := Generate(nil, Period{Start: date(2025, 3, 1), End: date(2025, 3, 31)})
	assert.Empty(t, items)
	assert.Equal(t, 0, summary.EmployeeCount)
	assert.Equal(t, 0.0, summary.GrandTotalHoursRaw)
	assert.Equal(t, "0.00", summary.GrandTotalPay.StringFixed(2))
}

func TestGenerate_PerEmployeeThreshold(t *testing.T) {
	period := Period{Start: date(2025, 3, 1), End: date(2025, 3, 31)}
	day := DayRecord{Date: date(2025, 3, 3), Events: timeclock.DailyTimeEvents{
		ClockIn: "08:00", ClockOut: "16:00",
	}}
	inputs := []Input{
		{
			Employee: Employee{ID: uuid.New(), Name: "Six hour shift", HourlyRate: money("10")},
			Records:  []DayRecord{day},
			Calc:     timeclock.Calculator{DailyThresholdHours: 6},
		},
		{
			Employee: Employee{ID: uuid.New(), Name: "Default shift", HourlyRate: money("10")},
			Records:  []DayRecord{day},
		},
	}

	items, _ := Generate(inputs, period)
	require.Len(t, items, 2)
	assert.Equal(t, 2.0, items[0].OvertimeHoursRaw)
	assert.Equal(t, 0.0, items[1].OvertimeHoursRaw)
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "R$ 0,00"},
		{"73.33", "R$ 73,33"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.89", "R$ 1.234.567,89"},
		{"999", "R$ 999,00"},
		{"-42.50", "-R$ 42,50"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBRL(money(tt.amount)))
		})
	}
}
