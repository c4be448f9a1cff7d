package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ademilsodream/tcponto-app-sub002/config"
	"github.com/ademilsodream/tcponto-app-sub002/database"
	"github.com/ademilsodream/tcponto-app-sub002/geocode"
	"github.com/ademilsodream/tcponto-app-sub002/middleware"
	"github.com/ademilsodream/tcponto-app-sub002/models"
	"github.com/ademilsodream/tcponto-app-sub002/timeclock"
)

type ClockHandler struct {
	config   *config.Config
	location *time.Location
	geocoder geocode.Geocoder
	now      func() time.Time
}

func NewClockHandler(cfg *config.Config, loc *time.Location, geocoder geocode.Geocoder) *ClockHandler {
	return &ClockHandler{
		config:   cfg,
		location: loc,
		geocoder: geocoder,
		now:      time.Now,
	}
}

type punchRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Punch stamps the current wall-clock time into today's record for the
// event named in the URL, creating the record on the first punch of the
// day. The submitted GPS position must fall inside an active location
// fence when any exist; reverse geocoding enriches the stored location
// but never blocks the punch.
func (h *ClockHandler) Punch(w http.ResponseWriter, r *http.Request) {
	emp := middleware.GetEmployeeFromContext(r.Context())

	event := models.ClockEvent(chi.URLParam(r, "event"))
	if !event.Valid() {
		respondError(w, http.StatusBadRequest, "unknown clock event")
		return
	}

	var req punchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var fences []models.AllowedLocation
	if err := database.GetDB().Where("active = ?", true).Find(&fences).Error; err != nil {
		respondInternalError(w, r, err, "failed to load allowed locations")
		return
	}

	location, err := h.resolveLocation(r, req, fences)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	now := h.now().In(h.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	value := fmt.Sprintf("%02d:%02d", now.Hour(), now.Minute())

	db := database.GetDB()
	var record models.TimeRecord
	var sequenceErr error
	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("employee_id = ? AND date = ?", emp.ID, today).First(&record).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			record = models.TimeRecord{EmployeeID: emp.ID, Date: today}
		}

		if sequenceErr = record.CanPunch(event); sequenceErr != nil {
			return sequenceErr
		}

		record.SetPunch(event, &value)
		if location != nil {
			if record.Locations == nil {
				record.Locations = models.PunchLocations{}
			}
			record.Locations[event] = *location
		}
		return tx.Save(&record).Error
	})
	if err != nil {
		if sequenceErr != nil {
			respondError(w, http.StatusConflict, sequenceErr.Error())
			return
		}
		respondInternalError(w, r, err, "failed to register punch")
		return
	}

	zerolog.Ctx(r.Context()).Info().
		Str("employee_id", emp.ID.String()).
		Str("event", string(event)).
		Str("value", value).
		Msg("punch registered")

	respondJSON(w, http.StatusOK, record)
}

// resolveLocation validates the punch position against the active
// fences and builds the stored location details. A missing position is
// only acceptable when no fences are configured.
func (h *ClockHandler) resolveLocation(r *http.Request, req punchRequest, fences []models.AllowedLocation) (*models.LocationDetails, error) {
	if req.Latitude == nil || req.Longitude == nil {
		if len(fences) > 0 {
			return nil, fmt.Errorf("a GPS position is required to punch")
		}
		return nil, nil
	}

	lat, lng := *req.Latitude, *req.Longitude
	if len(fences) > 0 && !withinAnyFence(lat, lng, fences) {
		return nil, fmt.Errorf("position is outside every allowed location")
	}

	details := &models.LocationDetails{Latitude: lat, Longitude: lng}
	if addr, err := h.geocoder.ReverseGeocode(r.Context(), lat, lng); err == nil {
		details.Address = addr.DisplayName
		details.City = addr.City
		details.Country = addr.Country
	}
	details.Normalize()
	return details, nil
}

func withinAnyFence(lat, lng float64, fences []models.AllowedLocation) bool {
	for _, fence := range fences {
		if geocode.DistanceMeters(lat, lng, fence.Latitude, fence.Longitude) <= fence.RadiusMeters {
			return true
		}
	}
	return false
}

// Today returns the employee's record for the current day plus the live
// hours-so-far figure for an in-progress day.
func (h *ClockHandler) Today(w http.ResponseWriter, r *http.Request) {
	emp := middleware.GetEmployeeFromContext(r.Context())

	now := h.now().In(h.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var record models.TimeRecord
	err := database.GetDB().Where("employee_id = ? AND date = ?", emp.ID, today).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"record":       nil,
				"hours_so_far": 0.0,
				"next_event":   models.EventClockIn,
			})
			return
		}
		respondInternalError(w, r, err, "failed to load today's record")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"record":       record,
		"hours_so_far": timeclock.WorkedSoFar(record.Events(), now),
		"next_event":   nextEvent(&record),
	})
}

func nextEvent(record *models.TimeRecord) models.ClockEvent {
	for _, event := range models.ClockEvents {
		if record.Punch(event) == nil {
			return event
		}
	}
	return ""
}
