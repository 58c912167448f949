package domain

import "github.com/m04kA/rental-guide-service/pkg/types"

// DayStatus is how a calendar day is rendered
type DayStatus string

const (
	DayPast          DayStatus = "past"
	DayOccupied      DayStatus = "occupied"
	DayAvailable     DayStatus = "available"
	DaySelectedStart DayStatus = "selected-start"
	DaySelectedEnd   DayStatus = "selected-end"
	DayInRange       DayStatus = "in-range"
)

// Reason strings shown verbatim by the calendar renderer
const (
	ReasonPast      = "Passado"
	ReasonOccupied  = "Ocupado"
	ReasonAvailable = "Disponível"
)

// CalendarDay is one rendered day of a month view
type CalendarDay struct {
	Date   types.Date
	Status DayStatus
	Reason string
}

// IsSelectable returns true if a click on this day changes the selection
func (d *CalendarDay) IsSelectable() bool {
	return d.Status != DayPast && d.Status != DayOccupied
}
