package update_property_settings

import "github.com/m04kA/rental-guide-service/internal/service/properties/models"

// UpdateSettingsRequest HTTP request model: список полей заменяется целиком
type UpdateSettingsRequest struct {
	RequiredFields []string `json:"requiredFields"`
	Timezone       *string  `json:"timezone,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest() *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		RequiredFields: r.RequiredFields,
		Timezone:       r.Timezone,
	}
}
