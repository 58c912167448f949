package reservations

import (
	"context"
	"time"

	"github.com/m04kA/rental-guide-service/internal/domain"
	reservationRepo "github.com/m04kA/rental-guide-service/internal/infra/storage/reservation"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Update(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context, today types.Date, propertyID *string) ([]domain.Reservation, error)
	ListHistoryPage(ctx context.Context, today types.Date, cursor string, limit int) (*reservationRepo.Page, error)
	CountOverlapping(ctx context.Context, propertyID string, stay domain.Interval, excludeID string) (int, error)
}

// BlockRepository интерфейс репозитория блокировок, нужен для проверки пересечений
type BlockRepository interface {
	CountOverlapping(ctx context.Context, propertyID string, stay domain.Interval) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
