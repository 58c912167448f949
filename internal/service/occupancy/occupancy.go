package occupancy

import (
	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// IsOccupied возвращает true, если дата попадает в неотмененное бронирование
// (дата выезда свободна) или в блокировку (обе границы включительно)
func IsOccupied(date types.Date, reservations []domain.Reservation, blocks []domain.BlockedDateRange) bool {
	for i := range reservations {
		if reservations[i].IsCancelled() {
			continue
		}
		if reservations[i].Stay().Contains(date, false) {
			return true
		}
	}
	for i := range blocks {
		if blocks[i].Span().Contains(date, true) {
			return true
		}
	}
	return false
}

// RangeHasConflict проверяет даты строго между start и end.
// Сами границы не проверяются: заезд в день чужого выезда допустим.
func RangeHasConflict(start, end types.Date, reservations []domain.Reservation, blocks []domain.BlockedDateRange) bool {
	for d := start.AddDays(1); d.Before(end); d = d.AddDays(1) {
		if IsOccupied(d, reservations, blocks) {
			return true
		}
	}
	return false
}
