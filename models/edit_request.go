package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EditRequestStatus string

const (
	EditPending  EditRequestStatus = "PENDING"
	EditApproved EditRequestStatus = "APPROVED"
	EditRejected EditRequestStatus = "REJECTED"
)

// EditRequest is an employee's request to change one punch on one day.
// The old value is snapshotted when the request is filed; an admin
// decision moves it out of PENDING exactly once.
type EditRequest struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	DeletedAt  gorm.DeletedAt    `gorm:"index" json:"-"`
	EmployeeID uuid.UUID         `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee   *Employee         `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Date       time.Time         `gorm:"type:date;not null" json:"date"`
	Field      ClockEvent        `gorm:"not null;size:20" json:"field"`
	OldValue   *string           `gorm:"size:5" json:"old_value"`
	NewValue   *string           `gorm:"size:5" json:"new_value"`
	Reason     string            `gorm:"not null;size:500" json:"reason"`
	Location   *LocationDetails  `gorm:"type:jsonb" json:"location,omitempty"`
	Status     EditRequestStatus `gorm:"not null;size:20;default:PENDING;index" json:"status"`
	ReviewedBy *uuid.UUID        `gorm:"type:uuid" json:"reviewed_by"`
	Reviewer   *Employee         `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
	ReviewedAt *time.Time        `json:"reviewed_at"`
	ReviewNote *string           `gorm:"size:500" json:"review_note"`
}

func (e *EditRequest) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = EditPending
	}
	return nil
}

func (e *EditRequest) IsPending() bool {
	return e.Status == EditPending
}
