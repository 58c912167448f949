package blocks

import (
	"context"
	"time"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// BlockRepository интерфейс репозитория блокировок дат
type BlockRepository interface {
	Create(ctx context.Context, block *domain.BlockedDateRange) (*domain.BlockedDateRange, error)
	GetByID(ctx context.Context, id string) (*domain.BlockedDateRange, error)
	List(ctx context.Context, from types.Date, propertyID *string) ([]domain.BlockedDateRange, error)
	Delete(ctx context.Context, id string) error
}

// PropertyProvider возвращает объект по id
type PropertyProvider interface {
	Get(ctx context.Context, id string) (*domain.Property, error)
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
