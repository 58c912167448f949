package get_property_settings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	"github.com/m04kA/rental-guide-service/internal/service/properties"
)

const msgNotFound = "imóvel não encontrado"

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

// Handle GET /api/v1/properties/{propertyId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]

	result, err := h.service.GetSettings(r.Context(), propertyID)
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/settings - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /properties/{id}/settings - Failed to get settings: property_id=%s, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/settings - Settings retrieved: property_id=%s", propertyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
