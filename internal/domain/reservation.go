package domain

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/m04kA/rental-guide-service/pkg/types"
)

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusPending   ReservationStatus = "pending"
	StatusCancelled ReservationStatus = "cancelled"
)

// IsValid returns true for a known status
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// Reservation represents a guest stay in a rental unit
type Reservation struct {
	ID           string
	PropertyID   string
	GuestName    string
	Status       ReservationStatus
	CheckIn      types.Date
	Checkout     types.Date
	InternalNote string
	Details      map[string]string // Property-specific fields such as lock_code or unit_number

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stay returns the occupied span, checkout exclusive
func (r *Reservation) Stay() Interval {
	return Interval{Start: r.CheckIn, End: r.Checkout}
}

// IsCancelled returns true if the reservation no longer occupies dates
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// IsPlaceholder returns true for a local entry of a create that has not been acknowledged
func (r *Reservation) IsPlaceholder() bool {
	return IsPlaceholderID(r.ID)
}

// Clone returns a deep copy
func (r Reservation) Clone() Reservation {
	r.Details = maps.Clone(r.Details)
	return r
}

// CheckIntegrity rejects records that break the data model.
// Used on records coming from sources, not on operator input.
func (r *Reservation) CheckIntegrity() error {
	if r.ID == "" {
		return fmt.Errorf("%w: reservation without id", ErrMalformedRecord)
	}
	if !r.Status.IsValid() {
		return fmt.Errorf("%w: reservation %s has unknown status %q", ErrMalformedRecord, r.ID, r.Status)
	}
	if r.CheckIn.IsZero() || r.Checkout.IsZero() {
		return fmt.Errorf("%w: reservation %s has no stay dates", ErrMalformedRecord, r.ID)
	}
	if !r.Checkout.After(r.CheckIn) {
		return fmt.Errorf("%w: reservation %s checkout %s is not after check-in %s",
			ErrMalformedRecord, r.ID, r.Checkout, r.CheckIn)
	}
	return nil
}

// ReservationPatch is a sparse update: nil fields are left unchanged.
// Details keys are merged; an empty value removes the key.
type ReservationPatch struct {
	GuestName    *string
	Status       *ReservationStatus
	CheckIn      *types.Date
	Checkout     *types.Date
	PropertyID   *string
	InternalNote *string
	Details      map[string]string
}

// IsEmpty returns true if the patch changes nothing
func (p ReservationPatch) IsEmpty() bool {
	return p.GuestName == nil && p.Status == nil && p.CheckIn == nil && p.Checkout == nil &&
		p.PropertyID == nil && p.InternalNote == nil && len(p.Details) == 0
}

// TouchesOccupancy returns true if the patch may change which dates are occupied
func (p ReservationPatch) TouchesOccupancy() bool {
	return p.CheckIn != nil || p.Checkout != nil || p.PropertyID != nil || p.Status != nil
}

// Apply returns a copy of r with the patch merged in
func (p ReservationPatch) Apply(r Reservation) Reservation {
	out := r.Clone()
	if p.GuestName != nil {
		out.GuestName = strings.TrimSpace(*p.GuestName)
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.CheckIn != nil {
		out.CheckIn = *p.CheckIn
	}
	if p.Checkout != nil {
		out.Checkout = *p.Checkout
	}
	if p.PropertyID != nil {
		out.PropertyID = *p.PropertyID
	}
	if p.InternalNote != nil {
		out.InternalNote = *p.InternalNote
	}
	if len(p.Details) > 0 {
		if out.Details == nil {
			out.Details = make(map[string]string, len(p.Details))
		}
		for k, v := range p.Details {
			if v == "" {
				delete(out.Details, k)
				continue
			}
			out.Details[k] = v
		}
	}
	return out
}

// ReservationDraft is the operator input for a new reservation
type ReservationDraft struct {
	PropertyID   string
	GuestName    string
	Status       ReservationStatus
	CheckIn      types.Date
	Checkout     types.Date
	InternalNote string
	Details      map[string]string
}

// ToReservation builds the reservation a draft describes, with the given id
func (d ReservationDraft) ToReservation(id string) Reservation {
	status := d.Status
	if status == "" {
		status = StatusPending
	}
	return Reservation{
		ID:           id,
		PropertyID:   d.PropertyID,
		GuestName:    strings.TrimSpace(d.GuestName),
		Status:       status,
		CheckIn:      d.CheckIn,
		Checkout:     d.Checkout,
		InternalNote: d.InternalNote,
		Details:      maps.Clone(d.Details),
	}
}

// IsPlaceholderID returns true for ids assigned locally before the store answers
func IsPlaceholderID(id string) bool {
	return strings.HasPrefix(id, PlaceholderPrefix)
}
