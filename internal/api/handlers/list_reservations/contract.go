package list_reservations

import (
	"github.com/m04kA/rental-guide-service/internal/service/feed"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// SessionProvider возвращает ленту сессии оператора
type SessionProvider interface {
	Session(operatorID string) *feed.Reconciler
}

// Clock возвращает "сегодня" оператора
type Clock interface {
	Today() types.Date
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
