package feed

import (
	"context"

	"github.com/m04kA/rental-guide-service/internal/domain"
)

// HistorySource источник архивных бронирований, отдающий страницы от новых к старым
type HistorySource interface {
	FetchHistoryPage(ctx context.Context, cursor string, limit int) (*Page, error)
}

// Metrics доменные метрики ленты
type Metrics interface {
	ObserveHistoryPage(result string)
	SetActiveSessions(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Page страница архива
type Page struct {
	Items      []domain.Reservation
	NextCursor string
	HasMore    bool
}
