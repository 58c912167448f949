package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

func d(s string) types.Date {
	return types.MustParseDate(s)
}

func span(start, end string) domain.Interval {
	return domain.Interval{Start: d(start), End: d(end)}
}

func TestInterval_ContainsCheckoutExclusive(t *testing.T) {
	stay := span("2024-03-10", "2024-03-15")

	assert.True(t, stay.Contains(d("2024-03-10"), false))
	assert.True(t, stay.Contains(d("2024-03-14"), false))
	assert.False(t, stay.Contains(d("2024-03-15"), false))
	assert.False(t, stay.Contains(d("2024-03-09"), false))
}

func TestInterval_ContainsInclusiveEnd(t *testing.T) {
	block := span("2024-04-01", "2024-04-03")

	assert.True(t, block.Contains(d("2024-04-01"), true))
	assert.True(t, block.Contains(d("2024-04-03"), true))
	assert.False(t, block.Contains(d("2024-04-04"), true))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name      string
		a, b      domain.Interval
		inclusive bool
		want      bool
	}{
		{name: "disjoint", a: span("2024-03-01", "2024-03-05"), b: span("2024-03-10", "2024-03-12"), want: false},
		{name: "back to back half-open", a: span("2024-03-01", "2024-03-05"), b: span("2024-03-05", "2024-03-08"), want: false},
		{name: "back to back inclusive", a: span("2024-03-01", "2024-03-05"), b: span("2024-03-05", "2024-03-08"), inclusive: true, want: true},
		{name: "nested", a: span("2024-03-01", "2024-03-20"), b: span("2024-03-05", "2024-03-08"), want: true},
		{name: "partial", a: span("2024-03-01", "2024-03-06"), b: span("2024-03-05", "2024-03-08"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Overlaps(tt.a, tt.b, tt.inclusive))
		})
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	base := d("2024-03-01")
	var intervals []domain.Interval
	for s := 0; s < 6; s++ {
		for l := 0; l < 4; l++ {
			intervals = append(intervals, domain.Interval{Start: base.AddDays(s), End: base.AddDays(s + l)})
		}
	}

	for _, a := range intervals {
		for _, b := range intervals {
			for _, inclusive := range []bool{false, true} {
				assert.Equal(t, domain.Overlaps(a, b, inclusive), domain.Overlaps(b, a, inclusive),
					"a=%s b=%s inclusive=%v", a, b, inclusive)
			}
		}
	}
}

func TestInterval_SelfContainment(t *testing.T) {
	base := d("2024-02-25")
	for length := 1; length < 10; length++ {
		i := domain.Interval{Start: base, End: base.AddDays(length)}
		i.EachDay(false, func(day types.Date) bool {
			assert.True(t, i.Contains(day, false), "interval=%s day=%s", i, day)
			return true
		})
	}
}

func TestInterval_EachDayAndNights(t *testing.T) {
	stay := span("2024-02-28", "2024-03-02")

	var days []string
	stay.EachDay(false, func(day types.Date) bool {
		days = append(days, day.String())
		return true
	})

	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, days)
	assert.Equal(t, 3, stay.Nights())
}

func TestInterval_Validate(t *testing.T) {
	_, err := domain.NewInterval(d("2024-03-10"), d("2024-03-09"))
	require.ErrorIs(t, err, domain.ErrInvalidInterval)

	err = domain.Interval{Start: d("2024-03-10")}.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidInterval)

	i, err := domain.NewInterval(d("2024-03-10"), d("2024-03-10"))
	require.NoError(t, err)
	assert.True(t, i.IsDegenerate())
}
