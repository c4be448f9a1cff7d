package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// Employee is a person who punches the clock. Admins additionally manage
// employees, review edit requests and run reports.
type Employee struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
	Name               string          `gorm:"not null;size:200" json:"name"`
	Email              string          `gorm:"uniqueIndex;not null;size:200" json:"email"`
	PasswordHash       string          `gorm:"not null" json:"-"`
	Role               Role            `gorm:"not null;size:20" json:"role"`
	HourlyRate         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"hourly_rate"`
	OvertimeRate       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"overtime_rate"`
	ShiftID            *uuid.UUID      `gorm:"type:uuid;index" json:"shift_id"`
	Shift              *WorkShift      `gorm:"foreignKey:ShiftID" json:"shift,omitempty"`
	Active             bool            `gorm:"default:true" json:"active"`
	MustChangePassword bool            `gorm:"default:true" json:"must_change_password"`
	TimeRecords        []TimeRecord    `gorm:"foreignKey:EmployeeID" json:"time_records,omitempty"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}

// CanManageRecordsFor reports whether the employee may read or alter
// another employee's time records. Everyone manages their own; admins
// manage everyone's.
func (e *Employee) CanManageRecordsFor(employeeID uuid.UUID) bool {
	return e.ID == employeeID || e.IsAdmin()
}

func (e *Employee) CanViewReports() bool {
	return e.IsAdmin()
}

// GenerateTempPassword produces the one-time password handed to a newly
// created employee. They must change it on first login.
func GenerateTempPassword() (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
