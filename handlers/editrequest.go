package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ademilsodream/tcponto-app-sub002/database"
	"github.com/ademilsodream/tcponto-app-sub002/middleware"
	"github.com/ademilsodream/tcponto-app-sub002/models"
	"github.com/ademilsodream/tcponto-app-sub002/timeclock"
)

type EditRequestHandler struct{}

func NewEditRequestHandler() *EditRequestHandler {
	return &EditRequestHandler{}
}

type createEditRequest struct {
	Date     string                  `json:"date"`
	Field    string                  `json:"field"`
	NewValue string                  `json:"new_value"`
	Reason   string                  `json:"reason"`
	Location *models.LocationDetails `json:"location"`
}

// Create files an edit request for one punch on one day. The current
// value is snapshotted here so the reviewer sees what the change
// replaces even if the record moves underneath the request.
func (h *EditRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	emp := middleware.GetEmployeeFromContext(r.Context())

	var req createEditRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	field := models.ClockEvent(req.Field)
	if !field.Valid() {
		respondError(w, http.StatusBadRequest, "unknown clock field")
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	var newValue *string
	if trimmed := strings.TrimSpace(req.NewValue); trimmed != "" {
		if _, ok := timeclock.ParseClock(trimmed); !ok {
			respondError(w, http.StatusBadRequest, "new value must be HH:MM or empty to clear")
			return
		}
		newValue = &trimmed
	}

	if strings.TrimSpace(req.Reason) == "" {
		respondError(w, http.StatusBadRequest, "a reason is required")
		return
	}

	request := models.EditRequest{
		EmployeeID: emp.ID,
		Date:       date,
		Field:      field,
		NewValue:   newValue,
		Reason:     req.Reason,
		Location:   req.Location,
		Status:     models.EditPending,
	}

	// Snapshot the punch being replaced, when the record exists.
	var record models.TimeRecord
	err = database.GetDB().Where("employee_id = ? AND date = ?", emp.ID, date).First(&record).Error
	if err == nil {
		request.OldValue = record.Punch(field)
	} else if err != gorm.ErrRecordNotFound {
		respondInternalError(w, r, err, "failed to load time record")
		return
	}

	if err := database.GetDB().Create(&request).Error; err != nil {
		respondInternalError(w, r, err, "failed to create edit request")
		return
	}

	respondJSON(w, http.StatusCreated, request)
}

// ListOwn returns the employee's own edit requests, newest first,
// optionally filtered by status.
func (h *EditRequestHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	emp := middleware.GetEmployeeFromContext(r.Context())

	query := database.GetDB().Where("employee_id = ?", emp.ID).Order("created_at DESC")
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.EditRequest
	if err := query.Find(&requests).Error; err != nil {
		respondInternalError(w, r, err, "failed to list edit requests")
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

// ListAll is the admin review queue. Defaults to pending requests.
func (h *EditRequestHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(models.EditPending)
	}

	var requests []models.EditRequest
	err := database.GetDB().
		Preload("Employee").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		respondInternalError(w, r, err, "failed to list edit requests")
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

type reviewRequest struct {
	Note string `json:"note"`
}

// Approve applies a pending request to its time record in one
// transaction: the request is re-checked for PENDING, the record is
// loaded or created, the field change applied and the request closed.
// A request that grew stale still wins: the requested value is applied
// over whatever the record holds now.
func (h *EditRequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	admin := middleware.GetEmployeeFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid edit request id")
		return
	}

	var req reviewRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	var request models.EditRequest
	var conflict bool
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, "id = ?", id).Error; err != nil {
			return err
		}
		if !request.IsPending() {
			conflict = true
			return gorm.ErrInvalidData
		}

		var record models.TimeRecord
		err := tx.Where("employee_id = ? AND date = ?", request.EmployeeID, request.Date).
			First(&record).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			record = models.TimeRecord{EmployeeID: request.EmployeeID, Date: request.Date}
		}

		record.SetPunch(request.Field, request.NewValue)
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		now := time.Now()
		request.Status = models.EditApproved
		request.ReviewedBy = &admin.ID
		request.ReviewedAt = &now
		if req.Note != "" {
			request.ReviewNote = &req.Note
		}
		return tx.Save(&request).Error
	})
	if err != nil {
		if conflict {
			respondError(w, http.StatusConflict, "edit request is no longer pending")
			return
		}
		if err == gorm.ErrRecordNotFound {
			respondError(w, http.StatusNotFound, "edit request not found")
			return
		}
		respondInternalError(w, r, err, "failed to approve edit request")
		return
	}

	// Notification delivery is an external collaborator; the decision is
	// only logged here.
	zerolog.Ctx(r.Context()).Info().
		Str("edit_request_id", request.ID.String()).
		Str("employee_id", request.EmployeeID.String()).
		Str("field", string(request.Field)).
		Msg("edit request approved")

	respondJSON(w, http.StatusOK, request)
}

// Reject closes a pending request without touching the time record.
func (h *EditRequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	admin := middleware.GetEmployeeFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid edit request id")
		return
	}

	var req reviewRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	var request models.EditRequest
	if err := database.GetDB().First(&request, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(w, http.StatusNotFound, "edit request not found")
			return
		}
		respondInternalError(w, r, err, "failed to load edit request")
		return
	}
	if !request.IsPending() {
		respondError(w, http.StatusConflict, "edit request is no longer pending")
		return
	}

	now := time.Now()
	request.Status = models.EditRejected
	request.ReviewedBy = &admin.ID
	request.ReviewedAt = &now
	if req.Note != "" {
		request.ReviewNote = &req.Note
	}
	if err := database.GetDB().Save(&request).Error; err != nil {
		respondInternalError(w, r, err, "failed to reject edit request")
		return
	}

	zerolog.Ctx(r.Context()).Info().
		Str("edit_request_id", request.ID.String()).
		Str("employee_id", request.EmployeeID.String()).
		Msg("edit request rejected")

	respondJSON(w, http.StatusOK, request)
}
