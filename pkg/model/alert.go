package model

import "time"

// AlertType categorizes the weather hazard an alert describes.
type AlertType string

const (
	TypeHeatwave     AlertType = "Heatwave"
	TypeThunderstorm AlertType = "Thunderstorm"
	TypeHeavyRain    AlertType = "HeavyRain"
	TypeCyclone      AlertType = "Cyclone"
	TypeFlood        AlertType = "Flood"
	TypeOther        AlertType = "Other"
)

// AlertTypes lists every known alert type.
var AlertTypes = []AlertType{
	TypeHeatwave, TypeThunderstorm, TypeHeavyRain, TypeCyclone, TypeFlood, TypeOther,
}

// Valid reports whether t is a known alert type.
func (t AlertType) Valid() bool {
	for _, known := range AlertTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Severity is the severity level of an alert.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"

	// SeverityAll is the filter sentinel matching every severity. It is
	// never a valid severity on an alert record.
	SeverityAll Severity = "All"
)

// Valid reports whether s is a severity an alert record may carry.
func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// Alert is a weather-hazard advisory record. ID is server-assigned and
// immutable; every other field changes only through an update call.
type Alert struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        AlertType `json:"type"`
	Severity    Severity  `json:"severity"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateAlertRequest is the payload for creating an alert.
type CreateAlertRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        AlertType `json:"type"`
	Severity    Severity  `json:"severity"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	IsActive    bool      `json:"isActive"`
}

// UpdateAlertRequest is a partial update; nil fields are left untouched
// by the server.
type UpdateAlertRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Type        *AlertType `json:"type,omitempty"`
	Severity    *Severity  `json:"severity,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsActive    *bool      `json:"isActive,omitempty"`
}
