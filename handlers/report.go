package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ademilsodream/tcponto-app-sub002/database"
	"github.com/ademilsodream/tcponto-app-sub002/middleware"
	"github.com/ademilsodream/tcponto-app-sub002/models"
	"github.com/ademilsodream/tcponto-app-sub002/payroll"
	"github.com/ademilsodream/tcponto-app-sub002/timeclock"
)

type ReportHandler struct{}

func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

// payrollLineItemView is the per-employee report row. Hours carry both
// the 1-decimal figure and the "HH:MM" rendering; pay is fixed to two
// decimals with a BRL-formatted companion string.
type payrollLineItemView struct {
	EmployeeID         uuid.UUID `json:"employee_id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	HourlyRate         string    `json:"hourly_rate"`
	OvertimeRate       string    `json:"overtime_rate"`
	DaysWorked         int       `json:"days_worked"`
	TotalHours         float64   `json:"total_hours"`
	TotalHoursHHMM     string    `json:"total_hours_hhmm"`
	NormalHours        float64   `json:"normal_hours"`
	NormalHoursHHMM    string    `json:"normal_hours_hhmm"`
	OvertimeHours      float64   `json:"overtime_hours"`
	OvertimeHoursHHMM  string    `json:"overtime_hours_hhmm"`
	NormalPay          string    `json:"normal_pay"`
	OvertimePay        string    `json:"overtime_pay"`
	TotalPay           string    `json:"total_pay"`
	NormalPayDisplay   string    `json:"normal_pay_display"`
	OvertimePayDisplay string    `json:"overtime_pay_display"`
	TotalPayDisplay    string    `json:"total_pay_display"`
}

// payrollSummaryView is the report's summary card set.
type payrollSummaryView struct {
	EmployeeCount           int     `json:"employee_count"`
	GrandTotalHours         float64 `json:"grand_total_hours"`
	GrandTotalOvertimeHours float64 `json:"grand_total_overtime_hours"`
	GrandTotalPay           string  `json:"grand_total_pay"`
	GrandTotalPayDisplay    string  `json:"grand_total_pay_display"`
}

type payrollReportView struct {
	Start   string                `json:"start"`
	End     string                `json:"end"`
	Items   []payrollLineItemView `json:"items"`
	Summary payrollSummaryView    `json:"summary"`
}

// Payroll runs the aggregator over an inclusive date range for all
// active employees, or one when employee_id is given. An empty range is
// a valid, displayable no-data state, not an error.
func (h *ReportHandler) Payroll(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	inputs, err := buildPayrollInputs(r, start, end)
	if err != nil {
		respondInternalError(w, r, err, "failed to load payroll data")
		return
	}

	items, summary := payroll.Generate(inputs, payroll.Period{Start: start, End: end})
	respondJSON(w, http.StatusOK, buildPayrollView(start, end, items, summary))
}

// buildPayrollInputs fetches the employees in scope with their shifts
// and their records for the range. Fetching is sequential per employee;
// the aggregation itself runs on already-fetched data.
func buildPayrollInputs(r *http.Request, start, end time.Time) ([]payroll.Input, error) {
	db := database.GetDB()

	query := db.Preload("Shift").Where("active = ?", true).Order("name ASC")
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		query = query.Where("id = ?", id)
	}

	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}

	inputs := make([]payroll.Input, 0, len(employees))
	for _, emp := range employees {
		records, err := fetchRecords(db, emp.ID, start, end)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, payroll.Input{
			Employee: payroll.Employee{
				ID:           emp.ID,
				Name:         emp.Name,
				Email:        emp.Email,
				HourlyRate:   emp.HourlyRate,
				OvertimeRate: emp.OvertimeRate,
			},
			Records: records,
			Calc:    emp.Shift.Calculator(),
		})
	}
	return inputs, nil
}

func fetchRecords(db *gorm.DB, employeeID uuid.UUID, start, end time.Time) ([]payroll.DayRecord, error) {
	var records []models.TimeRecord
	err := db.Where("employee_id = ? AND date BETWEEN ? AND ?", employeeID, start, end).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	days := make([]payroll.DayRecord, 0, len(records))
	for _, rec := range records {
		days = append(days, payroll.DayRecord{Date: rec.Date, Events: rec.Events()})
	}
	return days, nil
}

func buildPayrollView(start, end time.Time, items []payroll.LineItem, summary payroll.Summary) payrollReportView {
	views := make([]payrollLineItemView, 0, len(items))
	for _, item := range items {
		views = append(views, payrollLineItemView{
			EmployeeID:         item.Employee.ID,
			Name:               item.Employee.Name,
			Email:              item.Employee.Email,
			HourlyRate:         item.Employee.HourlyRate.StringFixed(2),
			OvertimeRate:       item.Employee.OvertimeRate.StringFixed(2),
			DaysWorked:         item.DaysWorked,
			TotalHours:         timeclock.Round1(item.TotalHoursRaw),
			TotalHoursHHMM:     timeclock.FormatHours(item.TotalHoursRaw),
			NormalHours:        timeclock.Round1(item.NormalHoursRaw),
			NormalHoursHHMM:    timeclock.FormatHours(item.NormalHoursRaw),
			OvertimeHours:      timeclock.Round1(item.OvertimeHoursRaw),
			OvertimeHoursHHMM:  timeclock.FormatHours(item.OvertimeHoursRaw),
			NormalPay:          item.NormalPay.StringFixed(2),
			OvertimePay:        item.OvertimePay.StringFixed(2),
			TotalPay:           item.TotalPay.StringFixed(2),
			NormalPayDisplay:   payroll.FormatBRL(item.NormalPay),
			OvertimePayDisplay: payroll.FormatBRL(item.OvertimePay),
			TotalPayDisplay:    payroll.FormatBRL(item.TotalPay),
		})
	}

	return payrollReportView{
		Start: start.Format(dateLayout),
		End:   end.Format(dateLayout),
		Items: views,
		Summary: payrollSummaryView{
			EmployeeCount:           summary.EmployeeCount,
			GrandTotalHours:         timeclock.Round1(summary.GrandTotalHoursRaw),
			GrandTotalOvertimeHours: timeclock.Round1(summary.GrandTotalOvertimeHoursRaw),
			GrandTotalPay:           summary.GrandTotalPay.StringFixed(2),
			GrandTotalPayDisplay:    payroll.FormatBRL(summary.GrandTotalPay),
		},
	}
}

type hoursDayView struct {
	Date       string           `json:"date"`
	ClockIn    *string          `json:"clock_in"`
	LunchStart *string          `json:"lunch_start"`
	LunchEnd   *string          `json:"lunch_end"`
	ClockOut   *string          `json:"clock_out"`
	Status     string           `json:"status"`
	Hours      timeclock.Result `json:"hours"`
}

// Hours is the per-day breakdown for one employee over a range: each
// day's punches, the calculator result for that day, and range totals.
func (h *ReportHandler) Hours(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	employeeID, err := uuid.Parse(r.URL.Query().Get("employee_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid employee_id")
		return
	}

	var emp models.Employee
	if err := database.GetDB().Preload("Shift").First(&emp, "id = ?", employeeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(w, http.StatusNotFound, "employee not found")
			return
		}
		respondInternalError(w, r, err, "failed to load employee")
		return
	}

	var records []models.TimeRecord
	err = database.GetDB().
		Where("employee_id = ? AND date BETWEEN ? AND ?", employeeID, start, end).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		respondInternalError(w, r, err, "failed to load time records")
		return
	}

	calc := emp.Shift.Calculator()
	days := make([]hoursDayView, 0, len(records))
	var totals timeclock.Result
	for _, rec := range records {
		res := calc.Calculate(rec.Events())
		totals.TotalHours += res.TotalHours
		totals.NormalHours += res.NormalHours
		totals.OvertimeHours += res.OvertimeHours
		days = append(days, hoursDayView{
			Date:       rec.Date.Format(dateLayout),
			ClockIn:    rec.ClockIn,
			LunchStart: rec.LunchStart,
			LunchEnd:   rec.LunchEnd,
			ClockOut:   rec.ClockOut,
			Status:     string(rec.Status),
			Hours:      res,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"employee": emp,
		"start":    start.Format(dateLayout),
		"end":      end.Format(dateLayout),
		"days":     days,
		"totals": map[string]interface{}{
			"total_hours":         timeclock.Round1(totals.TotalHours),
			"total_hours_hhmm":    timeclock.FormatHours(totals.TotalHours),
			"normal_hours":        timeclock.Round1(totals.NormalHours),
			"overtime_hours":      timeclock.Round1(totals.OvertimeHours),
			"overtime_hours_hhmm": timeclock.FormatHours(totals.OvertimeHours),
		},
	})
}

// OwnRecords is the employee self-service view of their punches.
func (h *ReportHandler) OwnRecords(w http.ResponseWriter, r *http.Request) {
	emp := middleware.GetEmployeeFromContext(r.Context())

	start, end, err := parseDateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var records []models.TimeRecord
	err = database.GetDB().
		Where("employee_id = ? AND date BETWEEN ? AND ?", emp.ID, start, end).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		respondInternalError(w, r, err, "failed to load time records")
		return
	}
	respondJSON(w, http.StatusOK, records)
}
