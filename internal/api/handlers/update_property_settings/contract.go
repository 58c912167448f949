package update_property_settings

import (
	"context"

	"github.com/m04kA/rental-guide-service/internal/service/properties/models"
)

type PropertyService interface {
	UpdateSettings(ctx context.Context, id string, req *models.UpdateSettingsRequest) (*models.PropertyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
