package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ademilsodream/tcponto-app-sub002/database"
	"github.com/ademilsodream/tcponto-app-sub002/models"
	"github.com/ademilsodream/tcponto-app-sub002/timeclock"
)

// AdminHandler covers employee, work-shift and allowed-location
// management. All routes are behind RequireRole(ADMIN).
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

func (h *AdminHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	query := database.GetDB().Preload("Shift").Order("name ASC")
	if r.URL.Query().Get("include_inactive") != "true" {
		query = query.Where("active = ?", true)
	}

	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		respondInternalError(w, r, err, "failed to list employees")
		return
	}
	respondJSON(w, http.StatusOK, employees)
}

type createEmployeeRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	HourlyRate   string  `json:"hourly_rate"`
	OvertimeRate string  `json:"overtime_rate"`
	ShiftID      *string `json:"shift_id"`
}

// CreateEmployee provisions an account with a generated temporary
// password, returned once in the response. The employee must change it
// on first login.
func (h *AdminHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		respondError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleEmployee
	}
	if role != models.RoleAdmin && role != models.RoleEmployee {
		respondError(w, http.StatusBadRequest, "role must be ADMIN or EMPLOYEE")
		return
	}

	hourlyRate, err := parseRate(req.HourlyRate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid hourly_rate")
		return
	}
	overtimeRate, err := parseRate(req.OvertimeRate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid overtime_rate")
		return
	}

	shiftID, err := parseShiftID(req.ShiftID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid shift_id")
		return
	}

	tempPassword, err := models.GenerateTempPassword()
	if err != nil {
		respondInternalError(w, r, err, "failed to generate temporary password")
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		respondInternalError(w, r, err, "failed to hash password")
		return
	}

	emp := models.Employee{
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       string(hashed),
		Role:               role,
		HourlyRate:         hourlyRate,
		OvertimeRate:       overtimeRate,
		ShiftID:            shiftID,
		Active:             true,
		MustChangePassword: true,
	}
	if err := database.GetDB().Create(&emp).Error; err != nil {
		respondError(w, http.StatusConflict, "employee with this email already exists")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"employee":      emp,
		"temp_password": tempPassword,
	})
}

type updateEmployeeRequest struct {
	Name         *string `json:"name"`
	Role         *string `json:"role"`
	HourlyRate   *string `json:"hourly_rate"`
	OvertimeRate *string `json:"overtime_rate"`
	ShiftID      *string `json:"shift_id"`
	Active       *bool   `json:"active"`
}

func (h *AdminHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	var emp models.Employee
	if err := database.GetDB().First(&emp, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(w, http.StatusNotFound, "employee not found")
			return
		}
		respondInternalError(w, r, err, "failed to load employee")
		return
	}

	var req updateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		if role != models.RoleAdmin && role != models.RoleEmployee {
			respondError(w, http.StatusBadRequest, "role must be ADMIN or EMPLOYEE")
			return
		}
		emp.Role = role
	}
	if req.HourlyRate != nil {
		rate, err := parseRate(*req.HourlyRate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid hourly_rate")
			return
		}
		emp.HourlyRate = rate
	}
	if req.OvertimeRate != nil {
		rate, err := parseRate(*req.OvertimeRate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid overtime_rate")
			return
		}
		emp.OvertimeRate = rate
	}
	if req.ShiftID != nil {
		shiftID, err := parseShiftID(req.ShiftID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid shift_id")
			return
		}
		emp.ShiftID = shiftID
	}
	if req.Active != nil {
		emp.Active = *req.Active
	}

	if err := database.GetDB().Save(&emp).Error; err != nil {
		respondInternalError(w, r, err, "failed to update employee")
		return
	}
	respondJSON(w, http.StatusOK, emp)
}

func (h *AdminHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	if err := database.GetDB().Delete(&models.Employee{}, "id = ?", id).Error; err != nil {
		respondInternalError(w, r, err, "failed to delete employee")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

var errNegativeRate = errors.New("rate must not be negative")

// parseRate reads a non-negative decimal rate; empty means zero.
func parseRate(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if rate.IsNegative() {
		return decimal.Zero, errNegativeRate
	}
	return rate, nil
}

// parseShiftID reads an optional shift reference; empty clears it.
func parseShiftID(raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

type workShiftRequest struct {
	Name                string  `json:"name"`
	StartTime           string  `json:"start_time"`
	LunchStartTime      string  `json:"lunch_start_time"`
	LunchReturnTime     string  `json:"lunch_return_time"`
	EndTime             string  `json:"end_time"`
	DailyThresholdHours float64 `json:"daily_threshold_hours"`
	ToleranceMinutes    int     `json:"tolerance_minutes"`
}

func (req *workShiftRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	for _, value := range []string{req.StartTime, req.LunchStartTime, req.LunchReturnTime, req.EndTime} {
		if value == "" {
			continue
		}
		if _, ok := timeclock.ParseClock(value); !ok {
			return "shift times must be HH:MM"
		}
	}
	if req.DailyThresholdHours < 0 || req.ToleranceMinutes < 0 {
		return "threshold and tolerance must not be negative"
	}
	return ""
}

func (h *AdminHandler) ListShifts(w http.ResponseWriter, r *http.Request) {
	var shifts []models.WorkShift
	if err := database.GetDB().Order("name ASC").Find(&shifts).Error; err != nil {
		respondInternalError(w, r, err, "failed to list work shifts")
		return
	}
	respondJSON(w, http.StatusOK, shifts)
}

func (h *AdminHandler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req workShiftRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	shift := models.WorkShift{
		Name:                req.Name,
		StartTime:           req.StartTime,
		LunchStartTime:      req.LunchStartTime,
		LunchReturnTime:     req.LunchReturnTime,
		EndTime:             req.EndTime,
		DailyThresholdHours: req.DailyThresholdHours,
		ToleranceMinutes:    req.ToleranceMinutes,
	}
	if shift.DailyThresholdHours == 0 {
		shift.DailyThresholdHours = timeclock.DefaultDailyThresholdHours
	}
	if err := database.GetDB().Create(&shift).Error; err != nil {
		respondError(w, http.StatusConflict, "shift with this name already exists")
		return
	}
	respondJSON(w, http.StatusCreated, shift)
}

func (h *AdminHandler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	var shift models.WorkShift
	if err := database.GetDB().First(&shift, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(w, http.StatusNotFound, "shift not found")
			return
		}
		respondInternalError(w, r, err, "failed to load shift")
		return
	}

	var req workShiftRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	shift.Name = req.Name
	shift.StartTime = req.StartTime
	shift.LunchStartTime = req.LunchStartTime
	shift.LunchReturnTime = req.LunchReturnTime
	shift.EndTime = req.EndTime
	shift.DailyThresholdHours = req.DailyThresholdHours
	shift.ToleranceMinutes = req.ToleranceMinutes
	if shift.DailyThresholdHours == 0 {
		shift.DailyThresholdHours = timeclock.DefaultDailyThresholdHours
	}

	if err := database.GetDB().Save(&shift).Error; err != nil {
		respondInternalError(w, r, err, "failed to update shift")
		return
	}
	respondJSON(w, http.StatusOK, shift)
}

type allowedLocationRequest struct {
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	Active       *bool   `json:"active"`
}

func (h *AdminHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	var locations []models.AllowedLocation
	if err := database.GetDB().Order("name ASC").Find(&locations).Error; err != nil {
		respondInternalError(w, r, err, "failed to list allowed locations")
		return
	}
	respondJSON(w, http.StatusOK, locations)
}

func (h *AdminHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req allowedLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.RadiusMeters <= 0 {
		respondError(w, http.StatusBadRequest, "radius_meters must be positive")
		return
	}

	location := models.AllowedLocation{
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		Active:       true,
	}
	if req.Active != nil {
		location.Active = *req.Active
	}
	if err := database.GetDB().Create(&location).Error; err != nil {
		respondInternalError(w, r, err, "failed to create allowed location")
		return
	}
	respondJSON(w, http.StatusCreated, location)
}

func (h *AdminHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	var location models.AllowedLocation
	if err := database.GetDB().First(&location, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(w, http.StatusNotFound, "location not found")
			return
		}
		respondInternalError(w, r, err, "failed to load location")
		return
	}

	var req allowedLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.RadiusMeters <= 0 {
		respondError(w, http.StatusBadRequest, "radius_meters must be positive")
		return
	}

	location.Name = req.Name
	location.Latitude = req.Latitude
	location.Longitude = req.Longitude
	location.RadiusMeters = req.RadiusMeters
	if req.Active != nil {
		location.Active = *req.Active
	}

	if err := database.GetDB().Save(&location).Error; err != nil {
		respondInternalError(w, r, err, "failed to update location")
		return
	}
	respondJSON(w, http.StatusOK, location)
}

func (h *AdminHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid location id")
		return
	}
	if err := database.GetDB().Delete(&models.AllowedLocation{}, "id = ?", id).Error; err != nil {
		respondInternalError(w, r, err, "failed to delete location")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
