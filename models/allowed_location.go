package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AllowedLocation is a GPS fence punches must fall inside. When no
// active fences exist, punches are accepted from anywhere.
type AllowedLocation struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null;size:200" json:"name"`
	Latitude     float64        `gorm:"not null" json:"latitude"`
	Longitude    float64        `gorm:"not null" json:"longitude"`
	RadiusMeters float64        `gorm:"not null;default:100" json:"radius_meters"`
	Active       bool           `gorm:"default:true" json:"active"`
}

func (a *AllowedLocation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
