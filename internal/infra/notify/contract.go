package notify

import (
	"context"

	"github.com/lib/pq"

	"github.com/m04kA/rental-guide-service/internal/domain"
)

// Listener источник уведомлений LISTEN/NOTIFY. Реализуется *pq.Listener.
type Listener interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// ReservationSource читает полный активный набор бронирований
type ReservationSource interface {
	ListActive(ctx context.Context, propertyID *string) ([]domain.Reservation, error)
}

// BlockSource читает действующие блокировки дат
type BlockSource interface {
	List(ctx context.Context, propertyID *string) ([]domain.BlockedDateRange, error)
}

// Metrics счетчики поставок подписок
type Metrics interface {
	ObserveDelivery(source, result string)
	ObserveResync(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
