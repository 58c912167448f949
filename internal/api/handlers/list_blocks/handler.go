package list_blocks

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
)

// BlockListResponse HTTP response model
type BlockListResponse struct {
	Blocks []handlers.BlockResponse `json:"blocks"`
}

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

// Handle GET /api/v1/properties/{propertyId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]

	list, err := h.service.List(r.Context(), &propertyID)
	if err != nil {
		h.logger.Error("GET /properties/{id}/blocks - Failed to list blocks: property_id=%s, error=%v", propertyID, err)
		handlers.RespondInternalError(w)
		return
	}

	blocks := make([]handlers.BlockResponse, 0, len(list))
	for i := range list {
		blocks = append(blocks, handlers.FromDomainBlock(&list[i]))
	}

	h.logger.Info("GET /properties/{id}/blocks - Blocks retrieved: property_id=%s, count=%d", propertyID, len(blocks))
	handlers.RespondJSON(w, http.StatusOK, BlockListResponse{Blocks: blocks})
}
