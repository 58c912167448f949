package get_calendar

import (
	"context"
	"time"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/occupancy"
)

// PropertyProvider возвращает объект по id
type PropertyProvider interface {
	Get(ctx context.Context, id string) (*domain.Property, error)
}

// OccupancyProvider возвращает текущий снимок занятости объекта
type OccupancyProvider interface {
	Snapshot(propertyID string) *occupancy.Index
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
