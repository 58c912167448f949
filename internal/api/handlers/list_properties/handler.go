package list_properties

import (
	"net/http"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
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

// Handle GET /api/v1/properties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /properties - Failed to list properties: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /properties - Properties retrieved: count=%d", len(result.Properties))
	handlers.RespondJSON(w, http.StatusOK, result)
}
