package domain

import "fmt"

// RecordKind identifies which collection a record belongs to
type RecordKind string

const (
	RecordReservation RecordKind = "reservation"
	RecordBlock       RecordKind = "block"
)

// IsValid returns true for a known kind
func (k RecordKind) IsValid() bool {
	return k == RecordReservation || k == RecordBlock
}

// Record is a tagged union of the occupancy-bearing record kinds.
// Exactly one of Reservation and Block is set, matching Kind.
type Record struct {
	Kind        RecordKind
	Reservation *Reservation
	Block       *BlockedDateRange
}

// ReservationRecord wraps a reservation
func ReservationRecord(r Reservation) Record {
	return Record{Kind: RecordReservation, Reservation: &r}
}

// BlockRecord wraps a block
func BlockRecord(b BlockedDateRange) Record {
	return Record{Kind: RecordBlock, Block: &b}
}

// ID returns the identity of the wrapped record
func (r Record) ID() string {
	switch r.Kind {
	case RecordReservation:
		return r.Reservation.ID
	case RecordBlock:
		return r.Block.ID
	}
	return ""
}

// PropertyID returns the property of the wrapped record
func (r Record) PropertyID() string {
	switch r.Kind {
	case RecordReservation:
		return r.Reservation.PropertyID
	case RecordBlock:
		return r.Block.PropertyID
	}
	return ""
}

// Occupies returns the occupied span and its end rule.
// ok is false for records that occupy nothing (cancelled reservations).
func (r Record) Occupies() (span Interval, inclusiveEnd bool, ok bool) {
	switch r.Kind {
	case RecordReservation:
		if r.Reservation.IsCancelled() {
			return Interval{}, false, false
		}
		return r.Reservation.Stay(), false, true
	case RecordBlock:
		return r.Block.Span(), true, true
	}
	return Interval{}, false, false
}

// CheckIntegrity validates the tag and the wrapped record
func (r Record) CheckIntegrity() error {
	switch r.Kind {
	case RecordReservation:
		if r.Reservation == nil || r.Block != nil {
			return fmt.Errorf("%w: reservation record with wrong payload", ErrMalformedRecord)
		}
		return r.Reservation.CheckIntegrity()
	case RecordBlock:
		if r.Block == nil || r.Reservation != nil {
			return fmt.Errorf("%w: block record with wrong payload", ErrMalformedRecord)
		}
		return r.Block.CheckIntegrity()
	}
	return fmt.Errorf("%w: unknown record kind %q", ErrMalformedRecord, r.Kind)
}
