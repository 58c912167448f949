package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/rental-guide-service/pkg/types"
)

// BlockedDateRange is an administrative block of dates, inclusive on both ends
type BlockedDateRange struct {
	ID         string
	PropertyID string
	StartDate  types.Date
	EndDate    types.Date
	Reason     *string
	CreatedAt  time.Time
}

// Span returns the blocked span (read it with inclusiveEnd=true)
func (b *BlockedDateRange) Span() Interval {
	return Interval{Start: b.StartDate, End: b.EndDate}
}

// CheckIntegrity rejects blocks that break the data model
func (b *BlockedDateRange) CheckIntegrity() error {
	if b.ID == "" {
		return fmt.Errorf("%w: block without id", ErrMalformedRecord)
	}
	if err := b.Span().Validate(); err != nil {
		return fmt.Errorf("%w: block %s: %v", ErrMalformedRecord, b.ID, err)
	}
	return nil
}
