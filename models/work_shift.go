package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ademilsodream/tcponto-app-sub002/timeclock"
)

// WorkShift is the schedule configuration an employee can be assigned
// to. The expected punch times are informational; the threshold and
// tolerance drive the hours calculator for everyone on the shift.
type WorkShift struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
	Name                string         `gorm:"uniqueIndex;not null;size:100" json:"name"`
	StartTime           string         `gorm:"size:5" json:"start_time"`
	LunchStartTime      string         `gorm:"size:5" json:"lunch_start_time"`
	LunchReturnTime     string         `gorm:"size:5" json:"lunch_return_time"`
	EndTime             string         `gorm:"size:5" json:"end_time"`
	DailyThresholdHours float64        `gorm:"not null;default:8" json:"daily_threshold_hours"`
	ToleranceMinutes    int            `gorm:"not null;default:0" json:"tolerance_minutes"`
}

func (s *WorkShift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Calculator builds the hours calculator this shift prescribes. A nil
// shift means the employee has no assignment and gets the defaults.
func (s *WorkShift) Calculator() timeclock.Calculator {
	if s == nil {
		return timeclock.NewCalculator()
	}
	return timeclock.Calculator{
		DailyThresholdHours: s.DailyThresholdHours,
		ToleranceMinutes:    s.ToleranceMinutes,
	}
}
