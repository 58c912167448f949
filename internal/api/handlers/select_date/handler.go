package select_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	selectDate "github.com/m04kA/rental-guide-service/internal/usecase/select_date"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidSelection   = "seleção de datas inválida"
	msgPropertyNotFound   = "imóvel não encontrado"
)

type Handler struct {
	useCase SelectDateUseCase
	logger  Logger
}

func NewHandler(useCase SelectDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/properties/{propertyId}/calendar/select
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /properties/{id}/calendar/select - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(propertyID))
	if err != nil {
		switch {
		case errors.Is(err, selectDate.ErrInvalidInput):
			h.logger.Warn("POST /properties/{id}/calendar/select - Invalid selection: property_id=%s, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		case errors.Is(err, selectDate.ErrPropertyNotFound):
			h.logger.Warn("POST /properties/{id}/calendar/select - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		default:
			h.logger.Error("POST /properties/{id}/calendar/select - Failed to select date: property_id=%s, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /properties/{id}/calendar/select - Selection updated: property_id=%s, state=%s, conflict=%t",
		propertyID, result.State, result.Conflict)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
