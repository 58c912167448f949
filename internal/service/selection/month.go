package selection

import (
	"time"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// MonthView возвращает статус каждого дня месяца.
// Приоритет: прошедшая > занятая > выбранная > доступная.
func MonthView(year int, month time.Month, avail Availability, state State, today types.Date) []domain.CalendarDay {
	first := types.DateOf(year, month, 1)
	next := types.DateOf(year, month+1, 1)

	days := make([]domain.CalendarDay, 0, first.DaysUntil(next))
	for d := first; d.Before(next); d = d.AddDays(1) {
		days = append(days, DayView(d, avail, state, today))
	}
	return days
}

// DayView вычисляет статус одного дня
func DayView(date types.Date, avail Availability, state State, today types.Date) domain.CalendarDay {
	switch {
	case IsPast(date, today):
		return domain.CalendarDay{Date: date, Status: domain.DayPast, Reason: domain.ReasonPast}
	case avail.IsOccupied(date):
		return domain.CalendarDay{Date: date, Status: domain.DayOccupied, Reason: domain.ReasonOccupied}
	}

	return domain.CalendarDay{Date: date, Status: selectedStatus(date, state), Reason: domain.ReasonAvailable}
}

func selectedStatus(date types.Date, state State) domain.DayStatus {
	switch state.Kind {
	case KindStartSelected:
		if date.Equal(state.Start) {
			return domain.DaySelectedStart
		}
	case KindRangeSelected:
		switch {
		case date.Equal(state.Start):
			return domain.DaySelectedStart
		case date.Equal(state.End):
			return domain.DaySelectedEnd
		case date.After(state.Start) && date.Before(state.End):
			return domain.DayInRange
		}
	}
	return domain.DayAvailable
}
