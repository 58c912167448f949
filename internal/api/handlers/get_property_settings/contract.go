package get_property_settings

import (
	"context"

	"github.com/m04kA/rental-guide-service/internal/service/properties/models"
)

type PropertyService interface {
	GetSettings(ctx context.Context, id string) (*models.PropertyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
