package create_block

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/blocks"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgPropertyNotFound   = "imóvel não encontrado"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/properties/{propertyId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]

	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /properties/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	block, err := h.service.Create(r.Context(), req.ToServiceRequest(propertyID))
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			h.logger.Warn("POST /properties/{id}/blocks - Validation failed: property_id=%s, code=%s", propertyID, ve.Code)
			handlers.RespondValidationError(w, ve)
			return
		}

		switch {
		case errors.Is(err, blocks.ErrPropertyNotFound):
			h.logger.Warn("POST /properties/{id}/blocks - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		default:
			h.logger.Error("POST /properties/{id}/blocks - Failed to create block: property_id=%s, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /properties/{id}/blocks - Block created: property_id=%s, block_id=%s", propertyID, block.ID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainBlock(block))
}
