package domain

// PlaceholderPrefix marks local ids of creates still waiting for the store
const PlaceholderPrefix = "tmp-"

// Business validation constants
const (
	MaxGuestNameLength    = 200
	MaxInternalNoteLength = 2000
	MaxDetailValueLength  = 500
	MaxRequiredFields     = 20
	MaxBlockReasonLength  = 500
)

// History pagination limits
const (
	DefaultHistoryPageSize = 20
	MaxHistoryPageSize     = 100
)

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// OccupyingStatuses lists statuses whose stays occupy dates
var OccupyingStatuses = []ReservationStatus{
	StatusActive,
	StatusPending,
}
