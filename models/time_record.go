package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ademilsodream/tcponto-app-sub002/timeclock"
)

// ClockEvent names one of the four daily punches.
type ClockEvent string

const (
	EventClockIn    ClockEvent = "clock_in"
	EventLunchStart ClockEvent = "lunch_start"
	EventLunchEnd   ClockEvent = "lunch_end"
	EventClockOut   ClockEvent = "clock_out"
)

// ClockEvents lists the punches in the order they happen in a workday.
var ClockEvents = []ClockEvent{EventClockIn, EventLunchStart, EventLunchEnd, EventClockOut}

func (e ClockEvent) Valid() bool {
	switch e {
	case EventClockIn, EventLunchStart, EventLunchEnd, EventClockOut:
		return true
	}
	return false
}

type RecordStatus string

const (
	RecordIncomplete RecordStatus = "INCOMPLETE"
	RecordComplete   RecordStatus = "COMPLETE"
)

// TimeRecord holds one employee's punches for one calendar day. Punch
// values are "HH:MM" wall-clock strings; nil means the punch has not
// happened (or was cleared by an approved edit).
type TimeRecord struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	EmployeeID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_time_records_employee_date" json:"employee_id"`
	Employee   *Employee      `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Date       time.Time      `gorm:"type:date;not null;uniqueIndex:idx_time_records_employee_date" json:"date"`
	ClockIn    *string        `gorm:"size:5" json:"clock_in"`
	LunchStart *string        `gorm:"size:5" json:"lunch_start"`
	LunchEnd   *string        `gorm:"size:5" json:"lunch_end"`
	ClockOut   *string        `gorm:"size:5" json:"clock_out"`
	Locations  PunchLocations `gorm:"type:jsonb" json:"locations,omitempty"`
	Status     RecordStatus   `gorm:"not null;size:20;default:INCOMPLETE" json:"status"`
}

func (t *TimeRecord) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = RecordIncomplete
	}
	return nil
}

// Events adapts the record to the calculator's input shape.
func (t *TimeRecord) Events() timeclock.DailyTimeEvents {
	return timeclock.DailyTimeEvents{
		ClockIn:    deref(t.ClockIn),
		LunchStart: deref(t.LunchStart),
		LunchEnd:   deref(t.LunchEnd),
		ClockOut:   deref(t.ClockOut),
	}
}

// Punch returns the stored value for one event.
func (t *TimeRecord) Punch(event ClockEvent) *string {
	switch event {
	case EventClockIn:
		return t.ClockIn
	case EventLunchStart:
		return t.LunchStart
	case EventLunchEnd:
		return t.LunchEnd
	case EventClockOut:
		return t.ClockOut
	}
	return nil
}

// SetPunch stores a value for one event and refreshes the record status.
func (t *TimeRecord) SetPunch(event ClockEvent, value *string) {
	switch event {
	case EventClockIn:
		t.ClockIn = value
	case EventLunchStart:
		t.LunchStart = value
	case EventLunchEnd:
		t.LunchEnd = value
	case EventClockOut:
		t.ClockOut = value
	}
	if t.IsComplete() {
		t.Status = RecordComplete
	} else {
		t.Status = RecordIncomplete
	}
}

// IsComplete reports whether the day is closed: entry and exit are both
// recorded. The lunch punches are optional (a day without a registered
// break is still a complete day).
func (t *TimeRecord) IsComplete() bool {
	return t.ClockIn != nil && t.ClockOut != nil
}

// CanPunch validates the live punch sequencing rules: no double punch of
// the same event, and no punch whose prerequisite is missing. Approved
// edits bypass this and write fields directly.
func (t *TimeRecord) CanPunch(event ClockEvent) error {
	if t.Punch(event) != nil {
		return fmt.Errorf("%s already registered today", event)
	}
	switch event {
	case EventLunchStart:
		if t.ClockIn == nil {
			return fmt.Errorf("cannot register %s before %s", EventLunchStart, EventClockIn)
		}
	case EventLunchEnd:
		if t.LunchStart == nil {
			return fmt.Errorf("cannot register %s before %s", EventLunchEnd, EventLunchStart)
		}
	case EventClockOut:
		if t.ClockIn == nil {
			return fmt.Errorf("cannot register %s before %s", EventClockOut, EventClockIn)
		}
		if t.LunchStart != nil && t.LunchEnd == nil {
			return fmt.Errorf("cannot register %s with an open lunch break", EventClockOut)
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
