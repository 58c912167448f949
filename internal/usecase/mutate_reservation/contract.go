package mutate_reservation

import (
	"context"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/feed"
)

// Feed локальное состояние ленты сессии оператора
type Feed interface {
	Lookup(id string) (domain.Reservation, bool)
	UpsertLocal(res domain.Reservation)
	ResolvePlaceholder(placeholderID string, stored domain.Reservation) error
	RemoveLocal(id string) feed.Removed
	Restore(removed feed.Removed)
}

// WriteSink хранилище бронирований
type WriteSink interface {
	Create(ctx context.Context, res domain.Reservation) (*domain.Reservation, error)
	Update(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error)
	Remove(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Reservation, error)
}

// PropertySettings возвращает обязательные поля бронирований объекта
type PropertySettings interface {
	RequiredFields(ctx context.Context, propertyID string) ([]string, error)
}

// Peers ленты остальных сессий операторов
type Peers interface {
	Forget(id string)
}

// Metrics счетчики исходов изменений
type Metrics interface {
	ObserveMutation(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
