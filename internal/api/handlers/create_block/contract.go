package create_block

import (
	"context"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/blocks"
)

type BlockService interface {
	Create(ctx context.Context, req blocks.CreateRequest) (*domain.BlockedDateRange, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
