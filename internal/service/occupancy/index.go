package occupancy

import (
	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// Index неизменяемый снимок занятости одного объекта.
// Неуверенный снимок (источник еще не прислал данные или прислал битые)
// считает занятой любую дату.
type Index struct {
	propertyID   string
	reservations []domain.Reservation
	blocks       []domain.BlockedDateRange
	uncertain    bool
}

// NewIndex создает снимок из полных наборов бронирований и блокировок
func NewIndex(propertyID string, reservations []domain.Reservation, blocks []domain.BlockedDateRange) *Index {
	return &Index{
		propertyID:   propertyID,
		reservations: reservations,
		blocks:       blocks,
	}
}

// UncertainIndex создает снимок, в котором занята каждая дата
func UncertainIndex(propertyID string) *Index {
	return &Index{propertyID: propertyID, uncertain: true}
}

// PropertyID возвращает объект снимка
func (idx *Index) PropertyID() string {
	return idx.propertyID
}

// Uncertain возвращает true, если снимок не основан на полных данных
func (idx *Index) Uncertain() bool {
	return idx.uncertain
}

// IsOccupied проверяет занятость даты
func (idx *Index) IsOccupied(date types.Date) bool {
	if idx.uncertain {
		return true
	}
	return IsOccupied(date, idx.reservations, idx.blocks)
}

// RangeHasConflict проверяет занятость дат строго между start и end
func (idx *Index) RangeHasConflict(start, end types.Date) bool {
	if idx.uncertain {
		return start.AddDays(1).Before(end)
	}
	return RangeHasConflict(start, end, idx.reservations, idx.blocks)
}

// Records возвращает записи, занимающие даты, в виде tagged union
func (idx *Index) Records() []domain.Record {
	records := make([]domain.Record, 0, len(idx.reservations)+len(idx.blocks))
	for _, r := range idx.reservations {
		if r.IsCancelled() {
			continue
		}
		records = append(records, domain.ReservationRecord(r))
	}
	for _, b := range idx.blocks {
		records = append(records, domain.BlockRecord(b))
	}
	return records
}
