package load_history

import "github.com/m04kA/rental-guide-service/internal/service/feed"

// SessionProvider возвращает ленту сессии оператора
type SessionProvider interface {
	Session(operatorID string) *feed.Reconciler
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
