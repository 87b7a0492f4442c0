// Package domain holds chart DTOs
package domain

import "astrolabe/internal/core/zodiac"

// OnboardingInput is the raw onboarding payload. The identity fields ride
// along untouched; only the birth fields feed the calculation pipeline
type OnboardingInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role,omitempty"`
	Priority string `json:"priority,omitempty"`

	// BirthDate is a YYYY-MM-DD calendar date
	BirthDate string `json:"birth_date" validate:"required"`

	// BirthTime is either a fuzzy time-of-day descriptor or an exact HH:MM
	BirthTime string `json:"birth_time" validate:"required"`

	// BirthPlace is free-form; coordinates arrive already resolved
	BirthPlace string  `json:"birth_place" validate:"required"`
	Latitude   float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude  float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Angle is a computed chart angle: raw degrees plus its zodiac position.
// Present only on success, so callers cannot mistake sentinel zeros for
// a real position at Aries 0
type Angle struct {
	Degrees  float64         `json:"degrees"`
	Position zodiac.Position `json:"position"`
}

// NatalChart is the calculation outcome returned to clients.
// Branch on Success before reading the angles; on failure they are nil
// and Error carries a human-readable diagnostic
type NatalChart struct {
	ChartID    string `json:"chart_id"`
	BirthDate  string `json:"birth_date"`
	BirthTime  string `json:"birth_time"` // fully resolved HH:MM
	BirthPlace string `json:"birth_place"`

	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	Ascendant *Angle `json:"ascendant,omitempty"`
	MC        *Angle `json:"mc,omitempty"`
}
