package create_reservation

import (
	"context"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/feed"
	mutateReservation "github.com/m04kA/rental-guide-service/internal/usecase/mutate_reservation"
)

type MutationUseCase interface {
	Create(ctx context.Context, f mutateReservation.Feed, draft domain.ReservationDraft) (mutateReservation.Outcome, error)
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
