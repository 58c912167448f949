package export_calendar

import (
	"context"
	"time"

	"github.com/m04kA/rental-guide-service/internal/domain"
)

// PropertyProvider возвращает объект по id
type PropertyProvider interface {
	Get(ctx context.Context, id string) (*domain.Property, error)
}

// ReservationSource активные бронирования объекта
type ReservationSource interface {
	ListActive(ctx context.Context, propertyID *string) ([]domain.Reservation, error)
}

// BlockSource блокировки дат объекта
type BlockSource interface {
	List(ctx context.Context, propertyID *string) ([]domain.BlockedDateRange, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
