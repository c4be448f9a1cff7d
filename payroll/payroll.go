// Package payroll aggregates daily worked hours into per-employee and
// report-wide pay figures over a date range.
package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ademilsodream/tcponto-app-sub002/timeclock"
)

// Employee is the slice of the employee profile the aggregator needs.
// A zero OvertimeRate means overtime pays the same as normal hours.
type Employee struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	OvertimeRate decimal.Decimal `json:"overtime_rate"`
}

// DayRecord is one day's clock events for one employee.
type DayRecord struct {
	Date   time.Time
	Events timeclock.DailyTimeEvents
}

// Input pairs an employee with their fetched records and the calculator
// their shift configuration prescribes.
type Input struct {
	Employee Employee
	Records  []DayRecord
	Calc     timeclock.Calculator
}

// Period is an inclusive calendar-date range. Comparison is date-only;
// the time-of-day part of the bounds is ignored.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar date of d falls within the period.
func (p Period) Contains(d time.Time) bool {
	day := toDate(d)
	return !day.Before(toDate(p.Start)) && !day.After(toDate(p.End))
}

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LineItem is one employee's accumulated figures over the report range.
// Hour sums stay unrounded so rounding error never compounds across
// days; display rounding happens at render time only.
type LineItem struct {
	Employee         Employee
	DaysWorked       int
	TotalHoursRaw    float64
	NormalHoursRaw   float64
	OvertimeHoursRaw float64
	NormalPay        decimal.Decimal
	OvertimePay      decimal.Decimal
	TotalPay         decimal.Decimal
}

// Summary carries the report-wide grand totals. Hour totals accumulate
// raw across every employee in the run and are rounded once at render;
// the pay total is the sum of the already-rounded per-employee figures.
type Summary struct {
	EmployeeCount              int
	GrandTotalHoursRaw         float64
	GrandTotalOvertimeHoursRaw float64
	GrandTotalPay              decimal.Decimal
}

// Generate produces one line item per input employee plus the grand
// totals for the whole run. Records outside the period are skipped;
// employees with no records in range still get a zero-valued line.
// The function is pure: same inputs, same output, no hidden state.
//
// Pay derivation per employee: normal pay is the raw normal-hour sum
// times the hourly rate, overtime pay the raw overtime-hour sum times
// the overtime rate, each rounded to 2 decimals independently; their
// sum is rounded again to 2 decimals for the total. The two-stage
// rounding is the report's display contract and must not be collapsed.
func Generate(inputs []Input, period Period) ([]LineItem, Summary) {
	items := make([]LineItem, 0, len(inputs))
	summary := Summary{EmployeeCount: len(inputs), GrandTotalPay: decimal.Zero}

	for _, in := range inputs {
		item := LineItem{Employee: in.Employee}

		for _, rec := range in.Records {
			if !period.Contains(rec.Date) {
				continue
			}
			res := in.Calc.Calculate(rec.Events)
			if res.TotalHours > 0 {
				item.DaysWorked++
			}
			item.TotalHoursRaw += res.TotalHours
			item.NormalHoursRaw += res.NormalHours
			item.OvertimeHoursRaw += res.OvertimeHours

			summary.GrandTotalHoursRaw += res.TotalHours
			summary.GrandTotalOvertimeHoursRaw += res.OvertimeHours
		}

		hourly := in.Employee.HourlyRate
		overtime := in.Employee.OvertimeRate
		if overtime.IsZero() {
			overtime = hourly
		}

		item.NormalPay = decimal.NewFromFloat(item.NormalHoursRaw).Mul(hourly).Round(2)
		item.OvertimePay = decimal.NewFromFloat(item.OvertimeHoursRaw).Mul(overtime).Round(2)
		item.TotalPay = item.NormalPay.Add(item.OvertimePay).Round(2)

		summary.GrandTotalPay = summary.GrandTotalPay.Add(item.TotalPay)
		items = append(items, item)
	}

	return items, summary
}
