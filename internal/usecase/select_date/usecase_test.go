package select_date

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/occupancy"
	"github.com/m04kA/rental-guide-service/internal/service/properties"
	"github.com/m04kA/rental-guide-service/internal/service/selection"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

type propertiesStub struct {
	err error
}

func (s propertiesStub) Get(_ context.Context, id string) (*domain.Property, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Property{ID: id}, nil
}

type occupancyStub struct {
	index *occupancy.Index
}

func (s occupancyStub) Snapshot(string) *occupancy.Index { return s.index }

type countingMetrics struct{ conflicts int }

func (m *countingMetrics) ObserveSelectionConflict() { m.conflicts++ }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(s string) types.Date { return types.MustParseDate(s) }

func datePtr(s string) *types.Date {
	d := date(s)
	return &d
}

func occupied() *occupancy.Index {
	return occupancy.NewIndex("casa-azul",
		[]domain.Reservation{{
			ID: "R1", PropertyID: "casa-azul", GuestName: "Ana", Status: domain.StatusActive,
			CheckIn: date("2024-03-20"), Checkout: date("2024-03-23"),
		}},
		nil,
	)
}

func newUseCase(idx *occupancy.Index, m Metrics) *UseCase {
	uc := NewUseCase(propertiesStub{}, occupancyStub{index: idx}, m, time.UTC, nopLogger{})
	uc.timeProvider = fixedClock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name         string
		req          Request
		want         selection.State
		wantIgnored  bool
		wantConflict bool
	}{
		{
			name: "first click starts selection",
			req:  Request{Date: date("2024-03-18")},
			want: selection.StartSelected(date("2024-03-18")),
		},
		{
			name: "second click closes free range",
			req:  Request{Start: datePtr("2024-03-16"), Date: date("2024-03-19")},
			want: selection.RangeSelected(date("2024-03-16"), date("2024-03-19")),
		},
		{
			name: "checkout on occupied check-in day is allowed",
			req:  Request{Start: datePtr("2024-03-23"), Date: date("2024-03-25")},
			want: selection.RangeSelected(date("2024-03-23"), date("2024-03-25")),
		},
		{
			name:         "range over reservation restarts from clicked date",
			req:          Request{Start: datePtr("2024-03-18"), Date: date("2024-03-25")},
			want:         selection.StartSelected(date("2024-03-25")),
			wantConflict: true,
		},
		{
			name:        "today is past",
			req:         Request{Start: datePtr("2024-03-18"), Date: date("2024-03-15")},
			want:        selection.StartSelected(date("2024-03-18")),
			wantIgnored: true,
		},
		{
			name:        "occupied date is ignored",
			req:         Request{Date: date("2024-03-21")},
			want:        selection.Empty(),
			wantIgnored: true,
		},
		{
			name: "click on start clears selection",
			req:  Request{Start: datePtr("2024-03-18"), Date: date("2024-03-18")},
			want: selection.Empty(),
		},
		{
			name: "click after full range starts over",
			req:  Request{Start: datePtr("2024-03-16"), End: datePtr("2024-03-18"), Date: date("2024-03-26")},
			want: selection.StartSelected(date("2024-03-26")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &countingMetrics{}
			uc := newUseCase(occupied(), m)
			tt.req.PropertyID = "casa-azul"

			resp, err := uc.Execute(context.Background(), &tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.want, resp.State)
			assert.Equal(t, tt.wantIgnored, resp.Ignored)
			assert.Equal(t, tt.wantConflict, resp.Conflict)
			if tt.wantConflict {
				assert.Equal(t, selection.WarningRangeConflict, resp.Warning)
				assert.Equal(t, 1, m.conflicts)
			} else {
				assert.Empty(t, resp.Warning)
				assert.Zero(t, m.conflicts)
			}
		})
	}
}

func TestExecute_UncertainIgnoresEveryClick(t *testing.T) {
	uc := newUseCase(occupancy.UncertainIndex("casa-azul"), &countingMetrics{})

	resp, err := uc.Execute(context.Background(), &Request{PropertyID: "casa-azul", Date: date("2024-04-02")})
	require.NoError(t, err)
	assert.True(t, resp.Uncertain)
	assert.True(t, resp.Ignored)
	assert.Equal(t, selection.Empty(), resp.State)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		props   propertiesStub
		req     Request
		wantErr error
	}{
		{name: "no date", req: Request{PropertyID: "casa-azul"}, wantErr: ErrInvalidInput},
		{name: "no property", req: Request{Date: date("2024-03-18")}, wantErr: ErrInvalidInput},
		{
			name:    "inverted range",
			req:     Request{PropertyID: "casa-azul", Start: datePtr("2024-03-19"), End: datePtr("2024-03-17"), Date: date("2024-03-18")},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown property",
			props:   propertiesStub{err: properties.ErrPropertyNotFound},
			req:     Request{PropertyID: "casa-nenhuma", Date: date("2024-03-18")},
			wantErr: ErrPropertyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(tt.props, occupancyStub{index: occupied()}, &countingMetrics{}, time.UTC, nopLogger{})
			_, err := uc.Execute(context.Background(), &tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
