package models

import (
	"slices"
	"time"

	"github.com/m04kA/rental-guide-service/internal/domain"
)

// Request модели

// CreatePropertyRequest запрос на создание объекта
type CreatePropertyRequest struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	RequiredFields []string `json:"requiredFields"`
	Timezone       string   `json:"timezone"` // Пусто = часовой пояс сервиса
}

// UpdateSettingsRequest запрос на замену настроек объекта
type UpdateSettingsRequest struct {
	RequiredFields []string `json:"requiredFields"`
	Timezone       *string  `json:"timezone,omitempty"` // nil = не менять
}

// Response модели

// PropertyResponse ответ с данными объекта
type PropertyResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	RequiredFields []string  `json:"requiredFields"`
	Timezone       string    `json:"timezone"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// PropertyListResponse ответ со списком объектов
type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

// FromDomainProperty конвертирует domain модель в DTO
func FromDomainProperty(p *domain.Property) *PropertyResponse {
	if p == nil {
		return nil
	}

	required := slices.Clone(p.RequiredFields)
	if required == nil {
		required = []string{}
	}

	return &PropertyResponse{
		ID:             p.ID,
		Name:           p.Name,
		RequiredFields: required,
		Timezone:       p.Timezone,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
