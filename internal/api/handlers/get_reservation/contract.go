package get_reservation

import (
	"context"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/feed"
)

type ReservationService interface {
	Get(ctx context.Context, id string) (*domain.Reservation, error)
}

// SessionProvider возвращает ленту сессии оператора
type SessionProvider interface {
	Session(operatorID string) *feed.Reconciler
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
