package domain

import (
	"slices"
	"time"
)

// Property represents a rental unit and its reservation settings
type Property struct {
	ID             string
	Name           string
	RequiredFields []string // Detail keys every reservation of this property must carry
	Timezone       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Requires returns true if field is mandatory for reservations of this property
func (p *Property) Requires(field string) bool {
	return slices.Contains(p.RequiredFields, field)
}

// Location returns the property's timezone, or fallback when it is unset or unknown
func (p *Property) Location(fallback *time.Location) *time.Location {
	if p.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}
