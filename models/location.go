package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type LocationKind string

const (
	// LocationKindCoordinates is the legacy shape: bare GPS coordinates.
	LocationKindCoordinates LocationKind = "coordinates"
	// LocationKindAddress is the full shape with a reverse-geocoded address.
	LocationKindAddress LocationKind = "address"
)

// LocationDetails records where a punch was made. It is a closed variant
// over the two shapes the product has historically stored: coordinate-only
// payloads written by old clients and full-address payloads written after
// reverse geocoding was added. The shape is discriminated on unmarshal by
// the presence of the address field, so consumers never duck-type.
type LocationDetails struct {
	Kind      LocationKind `json:"kind"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Address   string       `json:"address,omitempty"`
	City      string       `json:"city,omitempty"`
	Country   string       `json:"country,omitempty"`
}

// Normalize canonicalizes a payload decoded from either historical shape:
// the kind is re-derived from field presence rather than trusted from the
// stored value.
func (l *LocationDetails) Normalize() {
	if l.Address != "" {
		l.Kind = LocationKindAddress
	} else {
		l.Kind = LocationKindCoordinates
	}
}

func (l *LocationDetails) UnmarshalJSON(data []byte) error {
	type alias LocationDetails
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*l = LocationDetails(a)
	l.Normalize()
	return nil
}

// PunchLocations maps a clock event to the location it was punched from.
// Stored as a single JSONB column on the time record.
type PunchLocations map[ClockEvent]LocationDetails

func (p PunchLocations) Value() (driver.Value, error) {
	if len(p) == 0 {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *PunchLocations) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported punch locations column type %T", value)
	}
	return json.Unmarshal(raw, p)
}

func (l LocationDetails) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *LocationDetails) Scan(value interface{}) error {
	if value == nil {
		*l = LocationDetails{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported location column type %T", value)
	}
	return json.Unmarshal(raw, l)
}
