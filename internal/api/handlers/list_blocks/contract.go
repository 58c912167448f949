package list_blocks

import (
	"context"

	"github.com/m04kA/rental-guide-service/internal/domain"
)

type BlockService interface {
	List(ctx context.Context, propertyID *string) ([]domain.BlockedDateRange, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
