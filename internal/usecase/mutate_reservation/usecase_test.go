package mutate_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/feed"
	"github.com/m04kA/rental-guide-service/internal/service/properties"
	"github.com/m04kA/rental-guide-service/internal/service/reservations"
	"github.com/m04kA/rental-guide-service/pkg/ptr"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

var today = types.MustParseDate("2024-03-15")

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type feedMetrics struct{}

func (feedMetrics) ObserveHistoryPage(string) {}
func (feedMetrics) SetActiveSessions(int)     {}

type recordingMetrics struct {
	outcomes []string
}

func (m *recordingMetrics) ObserveMutation(operation, outcome string) {
	m.outcomes = append(m.outcomes, operation+":"+outcome)
}

type recordingPeers struct {
	forgotten []string
}

func (p *recordingPeers) Forget(id string) {
	p.forgotten = append(p.forgotten, id)
}

type emptyArchive struct{}

func (emptyArchive) FetchHistoryPage(context.Context, string, int) (*feed.Page, error) {
	return &feed.Page{}, nil
}

// fakeSink хранилище в памяти с управляемыми ошибками
type fakeSink struct {
	stored    map[string]domain.Reservation
	nextID    int
	createErr error
	updateErr error
	removeErr error
	getErr    error

	// onCreate вызывается до ответа хранилища, имитируя push во время записи
	onCreate func(stored domain.Reservation)
}

func newFakeSink(initial ...domain.Reservation) *fakeSink {
	s := &fakeSink{stored: make(map[string]domain.Reservation)}
	for _, r := range initial {
		s.stored[r.ID] = r
	}
	return s
}

func (s *fakeSink) Create(_ context.Context, res domain.Reservation) (*domain.Reservation, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	res.ID = fmt.Sprintf("R%d", 100+s.nextID)
	s.stored[res.ID] = res
	if s.onCreate != nil {
		s.onCreate(res)
	}
	return &res, nil
}

func (s *fakeSink) Update(_ context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	current, ok := s.stored[id]
	if !ok {
		return nil, reservations.ErrReservationNotFound
	}
	updated := patch.Apply(current)
	s.stored[id] = updated
	return &updated, nil
}

func (s *fakeSink) Remove(_ context.Context, id string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	if _, ok := s.stored[id]; !ok {
		return reservations.ErrReservationNotFound
	}
	delete(s.stored, id)
	return nil
}

func (s *fakeSink) Get(_ context.Context, id string) (*domain.Reservation, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	res, ok := s.stored[id]
	if !ok {
		return nil, reservations.ErrReservationNotFound
	}
	return &res, nil
}

type settingsStub map[string][]string

func (s settingsStub) RequiredFields(_ context.Context, propertyID string) ([]string, error) {
	fields, ok := s[propertyID]
	if !ok {
		return nil, properties.ErrPropertyNotFound
	}
	return fields, nil
}

func d(s string) types.Date { return types.MustParseDate(s) }

func res(id, name, checkIn, checkout string) domain.Reservation {
	return domain.Reservation{
		ID:         id,
		PropertyID: "casa-azul",
		GuestName:  name,
		Status:     domain.StatusActive,
		CheckIn:    d(checkIn),
		Checkout:   d(checkout),
	}
}

func ids(list []domain.Reservation) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.ID
	}
	return out
}

type fixture struct {
	uc      *UseCase
	sink    *fakeSink
	feed    *feed.Reconciler
	peers   *recordingPeers
	metrics *recordingMetrics
}

func newFixture(t *testing.T, active ...domain.Reservation) *fixture {
	t.Helper()

	sink := newFakeSink(active...)
	rec := feed.NewReconciler(emptyArchive{}, 10, feedMetrics{}, nopLogger{})
	require.NoError(t, rec.ReplaceActive(active))

	m := &recordingMetrics{}
	peers := &recordingPeers{}
	uc := NewUseCase(sink, settingsStub{"casa-azul": {"lock_code"}, "casa-verde": nil}, peers, m, nopLogger{})
	n := 0
	uc.newID = func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}

	return &fixture{uc: uc, sink: sink, feed: rec, peers: peers, metrics: m}
}

func draft(name, checkIn, checkout string) domain.ReservationDraft {
	return domain.ReservationDraft{
		PropertyID: "casa-azul",
		GuestName:  name,
		CheckIn:    d(checkIn),
		Checkout:   d(checkout),
		Details:    map[string]string{"lock_code": "4321"},
	}
}

func TestCreate_ReplacesPlaceholderInPlace(t *testing.T) {
	fx := newFixture(t,
		res("R1", "Ana", "2024-03-20", "2024-03-22"),
		res("R2", "Caio", "2024-03-20", "2024-03-21"),
	)
	before := ids(fx.feed.View(today, feed.Filter{}).Upcoming)

	outcome, err := fx.uc.Create(context.Background(), fx.feed, draft("Bia", "2024-03-20", "2024-03-23"))
	require.NoError(t, err)
	require.True(t, outcome.Applied())
	assert.Equal(t, "R101", outcome.Reservation.ID)
	assert.Equal(t, domain.StatusPending, outcome.Reservation.Status)

	after := ids(fx.feed.View(today, feed.Filter{}).Upcoming)
	assert.Equal(t, append(before, "R101"), after)
	for _, id := range after {
		assert.False(t, domain.IsPlaceholderID(id))
	}
	assert.Equal(t, []string{"create:applied"}, fx.metrics.outcomes)
}

func TestCreate_PushDuringWriteKeepsSingleEntry(t *testing.T) {
	fx := newFixture(t, res("R1", "Ana", "2024-03-20", "2024-03-22"))
	fx.sink.onCreate = func(stored domain.Reservation) {
		// push с сохраненной записью приходит раньше ответа хранилища
		require.NoError(t, fx.feed.ReplaceActive([]domain.Reservation{
			res("R1", "Ana", "2024-03-20", "2024-03-22"),
			stored,
		}))
	}

	outcome, err := fx.uc.Create(context.Background(), fx.feed, draft("Bia", "2024-03-20", "2024-03-23"))
	require.NoError(t, err)
	require.True(t, outcome.Applied())

	v := fx.feed.View(today, feed.Filter{})
	assert.Equal(t, []string{"R1", "R101"}, ids(v.Upcoming))
}

func TestCreate_RollsBackOnStoreFailure(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{name: "range occupied", err: fmt.Errorf("%w: overlap", reservations.ErrRangeOccupied), reason: ReasonRangeOccupied},
		{name: "store down", err: errors.New("connection reset"), reason: ReasonStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, res("R1", "Ana", "2024-03-20", "2024-03-22"))
			fx.sink.createErr = tt.err

			outcome, err := fx.uc.Create(context.Background(), fx.feed, draft("Bia", "2024-03-20", "2024-03-23"))
			require.NoError(t, err)
			assert.Equal(t, OutcomeRolledBack, outcome.Kind)
			assert.Equal(t, tt.reason, outcome.Reason)
			assert.ErrorIs(t, outcome.Err, tt.err)

			assert.Equal(t, []string{"R1"}, ids(fx.feed.View(today, feed.Filter{}).Upcoming))
		})
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(d *domain.ReservationDraft)
		code  domain.ValidationCode
		field string
	}{
		{name: "blank guest name", edit: func(d *domain.ReservationDraft) { d.GuestName = "   " }, code: domain.CodeGuestNameRequired, field: "guestName"},
		{name: "missing check-in", edit: func(d *domain.ReservationDraft) { d.CheckIn = types.Date{} }, code: domain.CodeStayDatesRequired, field: "checkIn"},
		{name: "missing checkout", edit: func(d *domain.ReservationDraft) { d.Checkout = types.Date{} }, code: domain.CodeStayDatesRequired, field: "checkout"},
		{name: "same day checkout", edit: func(d *domain.ReservationDraft) { d.Checkout = d.CheckIn }, code: domain.CodeCheckoutNotAfterCheckIn, field: "checkout"},
		{name: "unknown status", edit: func(d *domain.ReservationDraft) { d.Status = "confirmed" }, code: domain.CodeInvalidStatus, field: "status"},
		{name: "property required field", edit: func(d *domain.ReservationDraft) { d.Details = nil }, code: domain.CodeRequiredFieldMissing, field: "lock_code"},
		{name: "missing property", edit: func(d *domain.ReservationDraft) { d.PropertyID = "" }, code: domain.CodePropertyRequired, field: "propertyId"},
		{name: "long name", edit: func(d *domain.ReservationDraft) { d.GuestName = strings.Repeat("a", domain.MaxGuestNameLength+1) }, code: domain.CodeFieldTooLong, field: "guestName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			in := draft("Bia", "2024-03-20", "2024-03-23")
			tt.edit(&in)

			_, err := fx.uc.Create(context.Background(), fx.feed, in)
			ve, ok := domain.AsValidationError(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.code, ve.Code)
			assert.Equal(t, tt.field, ve.Field)

			assert.Zero(t, fx.feed.View(today, feed.Filter{}).Total(), "nothing applied locally")
			assert.Empty(t, fx.sink.stored)
		})
	}
}

func TestCreate_RequiredFieldsAreDataDriven(t *testing.T) {
	fx := newFixture(t)
	in := draft("Bia", "2024-03-20", "2024-03-23")
	in.PropertyID = "casa-verde"
	in.Details = nil

	outcome, err := fx.uc.Create(context.Background(), fx.feed, in)
	require.NoError(t, err)
	assert.True(t, outcome.Applied())
}

func TestCreate_UnknownProperty(t *testing.T) {
	fx := newFixture(t)
	in := draft("Bia", "2024-03-20", "2024-03-23")
	in.PropertyID = "casa-roxa"

	_, err := fx.uc.Create(context.Background(), fx.feed, in)
	require.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestUpdate_AppliesOptimisticallyThenStored(t *testing.T) {
	r1 := res("R1", "Ana", "2024-03-14", "2024-03-18")
	r1.Details = map[string]string{"lock_code": "1111"}
	fx := newFixture(t, r1)

	outcome, err := fx.uc.Update(context.Background(), fx.feed, "R1", domain.ReservationPatch{
		InternalNote: ptr.Ptr("pediu berço"),
		Details:      map[string]string{"unit_number": "12"},
	})
	require.NoError(t, err)
	require.True(t, outcome.Applied())

	got, ok := fx.feed.Lookup("R1")
	require.True(t, ok)
	assert.Equal(t, "pediu berço", got.InternalNote)
	assert.Equal(t, map[string]string{"lock_code": "1111", "unit_number": "12"}, got.Details)
}

func TestUpdate_FailureRefetches(t *testing.T) {
	r1 := res("R1", "Ana", "2024-03-14", "2024-03-18")
	r1.Details = map[string]string{"lock_code": "1111"}
	fx := newFixture(t, r1)
	fx.sink.updateErr = fmt.Errorf("%w: overlap", reservations.ErrRangeOccupied)

	outcome, err := fx.uc.Update(context.Background(), fx.feed, "R1", domain.ReservationPatch{
		Checkout: ptr.Ptr(d("2024-03-25")),
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeNeedsRefresh, outcome.Kind)
	assert.Equal(t, ReasonRangeOccupied, outcome.Reason)

	got, ok := fx.feed.Lookup("R1")
	require.True(t, ok)
	assert.Equal(t, "2024-03-18", got.Checkout.String(), "stored version replaces the optimistic one")
}

func TestUpdate_Rejections(t *testing.T) {
	r1 := res("R1", "Ana", "2024-03-14", "2024-03-18")
	r1.Details = map[string]string{"lock_code": "1111"}
	fx := newFixture(t, r1)

	_, err := fx.uc.Update(context.Background(), fx.feed, "R1", domain.ReservationPatch{Checkout: ptr.Ptr(d("2024-03-14"))})
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeCheckoutNotAfterCheckIn, ve.Code)

	_, err = fx.uc.Update(context.Background(), fx.feed, "R1", domain.ReservationPatch{Details: map[string]string{"lock_code": ""}})
	ve, ok = domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeRequiredFieldMissing, ve.Code)

	_, err = fx.uc.Update(context.Background(), fx.feed, "R9", domain.ReservationPatch{GuestName: ptr.Ptr("Bia")})
	require.ErrorIs(t, err, ErrReservationNotFound)

	_, err = fx.uc.Update(context.Background(), fx.feed, domain.PlaceholderPrefix+"x", domain.ReservationPatch{})
	require.ErrorIs(t, err, ErrPendingCreate)

	got, _ := fx.feed.Lookup("R1")
	assert.Equal(t, "2024-03-18", got.Checkout.String())
}

func TestRemove_RequiresConfirmation(t *testing.T) {
	fx := newFixture(t, res("R1", "Ana", "2024-03-12", "2024-03-15"))

	_, err := fx.uc.Remove(context.Background(), fx.feed, "R1", "R2")
	require.ErrorIs(t, err, ErrConfirmationMismatch)
	assert.Equal(t, []string{"R1"}, ids(fx.feed.View(today, feed.Filter{}).LeavingToday))
}

func TestRemove_Applied(t *testing.T) {
	fx := newFixture(t, res("R1", "Ana", "2024-03-12", "2024-03-15"))

	outcome, err := fx.uc.Remove(context.Background(), fx.feed, "R1", "R1")
	require.NoError(t, err)
	assert.True(t, outcome.Applied())
	assert.Empty(t, fx.feed.View(today, feed.Filter{}).LeavingToday)
	assert.NotContains(t, fx.sink.stored, "R1")
	assert.Equal(t, []string{"R1"}, fx.peers.forgotten)
}

func TestRemove_FailureThenPushRestores(t *testing.T) {
	r1 := res("R1", "Ana", "2024-03-12", "2024-03-15")
	fx := newFixture(t, r1)
	fx.sink.removeErr = errors.New("connection reset")
	fx.sink.getErr = errors.New("connection reset")

	outcome, err := fx.uc.Remove(context.Background(), fx.feed, "R1", "R1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNeedsRefresh, outcome.Kind)
	assert.Empty(t, fx.feed.View(today, feed.Filter{}).LeavingToday)

	require.NoError(t, fx.feed.ReplaceActive([]domain.Reservation{r1}))
	assert.Equal(t, []string{"R1"}, ids(fx.feed.View(today, feed.Filter{}).LeavingToday))
	assert.Empty(t, fx.peers.forgotten)
}

func TestRemove_FailureRefetchRestores(t *testing.T) {
	fx := newFixture(t, res("R1", "Ana", "2024-03-12", "2024-03-15"))
	fx.sink.removeErr = errors.New("connection reset")

	outcome, err := fx.uc.Remove(context.Background(), fx.feed, "R1", "R1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNeedsRefresh, outcome.Kind)
	assert.Equal(t, []string{"R1"}, ids(fx.feed.View(today, feed.Filter{}).LeavingToday))
}
