package create_property

import (
	"errors"
	"net/http"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/properties"
	"github.com/m04kA/rental-guide-service/internal/service/properties/models"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgAlreadyExists      = "já existe um imóvel com este código"
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

// Handle POST /api/v1/properties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePropertyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /properties - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			h.logger.Warn("POST /properties - Validation failed: code=%s, field=%s", ve.Code, ve.Field)
			handlers.RespondValidationError(w, ve)
			return
		}

		switch {
		case errors.Is(err, properties.ErrPropertyAlreadyExists):
			h.logger.Warn("POST /properties - Property already exists: property_id=%s", req.ID)
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /properties - Failed to create property: property_id=%s, error=%v", req.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /properties - Property created: property_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
