package occupancy_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/occupancy"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func d(s string) types.Date {
	return types.MustParseDate(s)
}

func reservation(id, checkIn, checkout string, status domain.ReservationStatus) domain.Reservation {
	return domain.Reservation{
		ID:         id,
		PropertyID: "casa-azul",
		GuestName:  "Guest " + id,
		Status:     status,
		CheckIn:    d(checkIn),
		Checkout:   d(checkout),
	}
}

func block(id, start, end string) domain.BlockedDateRange {
	return domain.BlockedDateRange{ID: id, PropertyID: "casa-azul", StartDate: d(start), EndDate: d(end)}
}

func TestIsOccupied_ReservationCheckoutIsFree(t *testing.T) {
	reservations := []domain.Reservation{reservation("A", "2024-03-10", "2024-03-15", domain.StatusActive)}

	assert.True(t, occupancy.IsOccupied(d("2024-03-14"), reservations, nil))
	assert.False(t, occupancy.IsOccupied(d("2024-03-15"), reservations, nil))
	assert.True(t, occupancy.IsOccupied(d("2024-03-10"), reservations, nil))
}

func TestIsOccupied_BlockInclusiveBothEnds(t *testing.T) {
	blocks := []domain.BlockedDateRange{block("B", "2024-04-01", "2024-04-03")}

	assert.True(t, occupancy.IsOccupied(d("2024-04-03"), nil, blocks))
	assert.True(t, occupancy.IsOccupied(d("2024-04-01"), nil, blocks))
	assert.False(t, occupancy.IsOccupied(d("2024-04-04"), nil, blocks))
}

func TestIsOccupied_CancelledIgnored(t *testing.T) {
	reservations := []domain.Reservation{reservation("C", "2024-03-10", "2024-03-15", domain.StatusCancelled)}

	assert.False(t, occupancy.IsOccupied(d("2024-03-12"), reservations, nil))
}

func TestIsOccupied_Monotonic(t *testing.T) {
	existing := []domain.Reservation{reservation("A", "2024-03-10", "2024-03-15", domain.StatusActive)}
	blocks := []domain.BlockedDateRange{block("B", "2024-03-20", "2024-03-21")}

	added := reservation("N", "2024-03-13", "2024-03-18", domain.StatusPending)
	addedBlock := block("B2", "2024-03-25", "2024-03-26")

	withReservation := append(append([]domain.Reservation{}, existing...), added)
	withBlock := append(append([]domain.BlockedDateRange{}, blocks...), addedBlock)

	for day := d("2024-03-01"); day.Before(d("2024-04-01")); day = day.AddDays(1) {
		before := occupancy.IsOccupied(day, existing, blocks)

		after := occupancy.IsOccupied(day, withReservation, blocks)
		if before {
			assert.True(t, after, "reservation freed %s", day)
		}
		if !before && after {
			assert.True(t, added.Stay().Contains(day, false), "reservation occupied %s outside its span", day)
		}

		afterBlock := occupancy.IsOccupied(day, existing, withBlock)
		if before {
			assert.True(t, afterBlock, "block freed %s", day)
		}
		if !before && afterBlock {
			assert.True(t, addedBlock.Span().Contains(day, true), "block occupied %s outside its span", day)
		}
	}
}

func TestRangeHasConflict(t *testing.T) {
	reservations := []domain.Reservation{reservation("A", "2024-03-22", "2024-03-23", domain.StatusActive)}
	blocks := []domain.BlockedDateRange{block("B", "2024-03-28", "2024-03-28")}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{name: "clean range", start: "2024-03-15", end: "2024-03-20", want: false},
		{name: "reservation in the middle", start: "2024-03-20", end: "2024-03-25", want: true},
		{name: "ends on reservation check-in", start: "2024-03-18", end: "2024-03-22", want: false},
		{name: "starts on reservation checkout", start: "2024-03-23", end: "2024-03-26", want: false},
		{name: "block endpoint is not scanned", start: "2024-03-25", end: "2024-03-28", want: false},
		{name: "block strictly inside", start: "2024-03-25", end: "2024-03-30", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, occupancy.RangeHasConflict(d(tt.start), d(tt.end), reservations, blocks))
		})
	}
}

func TestTracker_UncertainUntilBothSourcesDeliver(t *testing.T) {
	tracker := occupancy.NewTracker(nopLogger{})

	snap := tracker.Snapshot("casa-azul")
	assert.True(t, snap.Uncertain())
	assert.True(t, snap.IsOccupied(d("2030-01-01")))

	require.NoError(t, tracker.SetReservations(nil))
	assert.True(t, tracker.Snapshot("casa-azul").Uncertain())

	require.NoError(t, tracker.SetBlocks(nil))
	assert.True(t, tracker.Ready())
	assert.False(t, tracker.Snapshot("casa-azul").IsOccupied(d("2030-01-01")))
}

func TestTracker_SnapshotPerProperty(t *testing.T) {
	tracker := occupancy.NewTracker(nopLogger{})

	other := reservation("X", "2024-03-01", "2024-03-31", domain.StatusActive)
	other.PropertyID = "casa-verde"

	require.NoError(t, tracker.SetReservations([]domain.Reservation{
		reservation("A", "2024-03-10", "2024-03-15", domain.StatusActive),
		other,
	}))
	require.NoError(t, tracker.SetBlocks([]domain.BlockedDateRange{block("B", "2024-04-01", "2024-04-03")}))

	snap := tracker.Snapshot("casa-azul")
	assert.True(t, snap.IsOccupied(d("2024-03-14")))
	assert.False(t, snap.IsOccupied(d("2024-03-15")))
	assert.True(t, snap.IsOccupied(d("2024-04-03")))
	assert.False(t, snap.IsOccupied(d("2024-03-05")))
	assert.Len(t, snap.Records(), 2)

	assert.True(t, tracker.Snapshot("casa-verde").IsOccupied(d("2024-03-05")))
}

func TestTracker_MalformedDeliveryOverReports(t *testing.T) {
	tracker := occupancy.NewTracker(nopLogger{})
	require.NoError(t, tracker.SetReservations(nil))
	require.NoError(t, tracker.SetBlocks(nil))

	broken := reservation("Z", "2024-03-10", "2024-03-09", domain.StatusActive)
	err := tracker.SetReservations([]domain.Reservation{broken})

	require.ErrorIs(t, err, occupancy.ErrMalformedDelivery)
	assert.True(t, errors.Is(err, domain.ErrMalformedRecord))
	assert.True(t, tracker.Snapshot("casa-azul").IsOccupied(d("2024-05-01")))

	// следующая корректная доставка восстанавливает точность
	require.NoError(t, tracker.SetReservations(nil))
	assert.False(t, tracker.Snapshot("casa-azul").IsOccupied(d("2024-05-01")))
}

func TestTracker_FailedSourceOverReports(t *testing.T) {
	tracker := occupancy.NewTracker(nopLogger{})
	require.NoError(t, tracker.SetReservations(nil))
	require.NoError(t, tracker.SetBlocks(nil))

	tracker.MarkBlocksFailed(errors.New("listener lost connection"))

	assert.True(t, tracker.Snapshot("casa-azul").IsOccupied(d("2024-05-01")))
	assert.True(t, tracker.Snapshot("casa-azul").RangeHasConflict(d("2024-05-01"), d("2024-05-03")))
}
