package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ademilsodream/tcponto-app-sub002/payroll"
	"github.com/ademilsodream/tcponto-app-sub002/timeclock"
)

// PayrollExport streams the payroll report as a download. The dataset
// is the same as the JSON report; only the rendering differs.
// format=csv (default) or format=xlsx.
func (h *ReportHandler) PayrollExport(w http.ResponseWriter, r *http.Request) {
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

	switch r.URL.Query().Get("format") {
	case "", "csv":
		writePayrollCSV(w, start, end, items, summary)
	case "xlsx":
		writePayrollXLSX(w, r, start, end, items, summary)
	default:
		respondError(w, http.StatusBadRequest, "format must be csv or xlsx")
	}
}

var payrollExportHeader = []string{
	"Employee", "Email", "Hourly Rate", "Overtime Rate",
	"Total Hours", "Normal Hours", "Overtime Hours",
	"Normal Pay", "Overtime Pay", "Total Pay",
}

func payrollExportRow(item payroll.LineItem) []string {
	return []string{
		item.Employee.Name,
		item.Employee.Email,
		item.Employee.HourlyRate.StringFixed(2),
		item.Employee.OvertimeRate.StringFixed(2),
		strconv.FormatFloat(timeclock.Round1(item.TotalHoursRaw), 'f', 1, 64),
		strconv.FormatFloat(timeclock.Round1(item.NormalHoursRaw), 'f', 1, 64),
		strconv.FormatFloat(timeclock.Round1(item.OvertimeHoursRaw), 'f', 1, 64),
		item.NormalPay.StringFixed(2),
		item.OvertimePay.StringFixed(2),
		item.TotalPay.StringFixed(2),
	}
}

func exportFilename(start, end time.Time, ext string) string {
	return fmt.Sprintf("payroll_%s_%s.%s", start.Format("20060102"), end.Format("20060102"), ext)
}

func writePayrollCSV(w http.ResponseWriter, start, end time.Time, items []payroll.LineItem, summary payroll.Summary) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", exportFilename(start, end, "csv")))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write(payrollExportHeader)
	for _, item := range items {
		writer.Write(payrollExportRow(item))
	}

	writer.Write([]string{})
	writer.Write([]string{
		"Totals", "", "", "",
		strconv.FormatFloat(timeclock.Round1(summary.GrandTotalHoursRaw), 'f', 1, 64),
		"",
		strconv.FormatFloat(timeclock.Round1(summary.GrandTotalOvertimeHoursRaw), 'f', 1, 64),
		"", "",
		summary.GrandTotalPay.StringFixed(2),
	})
}

func writePayrollXLSX(w http.ResponseWriter, r *http.Request, start, end time.Time, items []payroll.LineItem, summary payroll.Summary) {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Payroll"
	file.SetSheetName(file.GetSheetName(0), sheet)

	for col, title := range payrollExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		file.SetCellValue(sheet, cell, title)
	}

	for i, item := range items {
		row := i + 2
		values := []interface{}{
			item.Employee.Name,
			item.Employee.Email,
			item.Employee.HourlyRate.InexactFloat64(),
			item.Employee.OvertimeRate.InexactFloat64(),
			timeclock.Round1(item.TotalHoursRaw),
			timeclock.Round1(item.NormalHoursRaw),
			timeclock.Round1(item.OvertimeHoursRaw),
			item.NormalPay.InexactFloat64(),
			item.OvertimePay.InexactFloat64(),
			item.TotalPay.InexactFloat64(),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			file.SetCellValue(sheet, cell, value)
		}
	}

	totalsRow := len(items) + 3
	file.SetCellValue(sheet, fmt.Sprintf("A%d", totalsRow), "Totals")
	file.SetCellValue(sheet, fmt.Sprintf("E%d", totalsRow), timeclock.Round1(summary.GrandTotalHoursRaw))
	file.SetCellValue(sheet, fmt.Sprintf("G%d", totalsRow), timeclock.Round1(summary.GrandTotalOvertimeHoursRaw))
	file.SetCellValue(sheet, fmt.Sprintf("J%d", totalsRow), summary.GrandTotalPay.InexactFloat64())

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", exportFilename(start, end, "xlsx")))

	if err := file.Write(w); err != nil {
		respondInternalError(w, r, err, "failed to write spreadsheet")
	}
}
