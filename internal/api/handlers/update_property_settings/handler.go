package update_property_settings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/properties"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgNotFound           = "imóvel não encontrado"
)

type Handler struct {
	service PropertyService
	logger  Logger
}

func NewHandler(service PropertyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/properties/{propertyId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /properties/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSettings(r.Context(), propertyID, req.ToServiceRequest())
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			h.logger.Warn("PUT /properties/{id}/settings - Validation failed: property_id=%s, code=%s, field=%s",
				propertyID, ve.Code, ve.Field)
			handlers.RespondValidationError(w, ve)
			return
		}

		switch {
		case errors.Is(err, properties.ErrPropertyNotFound):
			h.logger.Warn("PUT /properties/{id}/settings - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /properties/{id}/settings - Failed to update settings: property_id=%s, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /properties/{id}/settings - Settings updated: property_id=%s, required_fields=%v",
		propertyID, result.RequiredFields)
	handlers.RespondJSON(w, http.StatusOK, result)
}
