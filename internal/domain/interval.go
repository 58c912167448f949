package domain

import (
	"fmt"

	"github.com/m04kA/rental-guide-service/pkg/types"
)

// Interval is a span of calendar days.
// Reservations read it as [Start, End) since the checkout day is free for the next guest;
// administrative blocks read it as [Start, End].
type Interval struct {
	Start types.Date
	End   types.Date
}

// NewInterval builds a validated interval
func NewInterval(start, end types.Date) (Interval, error) {
	i := Interval{Start: start, End: end}
	if err := i.Validate(); err != nil {
		return Interval{}, err
	}
	return i, nil
}

// Validate rejects missing bounds and start after end
func (i Interval) Validate() error {
	if i.Start.IsZero() || i.End.IsZero() {
		return fmt.Errorf("%w: both bounds are required", ErrInvalidInterval)
	}
	if i.Start.After(i.End) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidInterval, i.Start, i.End)
	}
	return nil
}

// IsDegenerate returns true when Start == End
func (i Interval) IsDegenerate() bool {
	return i.Start.Equal(i.End)
}

// Contains reports whether d lies in the interval.
// The start is always inclusive; inclusiveEnd selects the end rule.
func (i Interval) Contains(d types.Date, inclusiveEnd bool) bool {
	if d.Before(i.Start) {
		return false
	}
	if inclusiveEnd {
		return !d.After(i.End)
	}
	return d.Before(i.End)
}

// Overlaps reports whether a and b share at least one day.
// With inclusive=false both are half-open: a.start < b.end && b.start < a.end.
// With inclusive=true the comparison uses <=.
func Overlaps(a, b Interval, inclusive bool) bool {
	if inclusive {
		return !a.Start.After(b.End) && !b.Start.After(a.End)
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Nights returns the number of nights of a half-open stay
func (i Interval) Nights() int {
	return i.Start.DaysUntil(i.End)
}

// EachDay calls fn for each day of the interval in order until fn returns false
func (i Interval) EachDay(inclusiveEnd bool, fn func(d types.Date) bool) {
	for d := i.Start; i.Contains(d, inclusiveEnd); d = d.AddDays(1) {
		if !fn(d) {
			return
		}
	}
}

func (i Interval) String() string {
	return i.Start.String() + ".." + i.End.String()
}
