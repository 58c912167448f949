package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	"github.com/m04kA/rental-guide-service/internal/api/middleware"
	"github.com/m04kA/rental-guide-service/internal/domain"
	mutateReservation "github.com/m04kA/rental-guide-service/internal/usecase/mutate_reservation"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgMissingOperatorID  = "identificação do operador ausente"
	msgPropertyNotFound   = "imóvel não encontrado"
)

type Handler struct {
	useCase  MutationUseCase
	sessions SessionProvider
	logger   Logger
}

func NewHandler(useCase MutationUseCase, sessions SessionProvider, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		sessions: sessions,
		logger:   logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := middleware.GetOperatorID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing operator ID")
		handlers.RespondUnauthorized(w, msgMissingOperatorID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	outcome, err := h.useCase.Create(r.Context(), h.sessions.Session(operatorID), req.ToDraft())
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			h.logger.Warn("POST /reservations - Validation failed: operator=%s, code=%s, field=%s", operatorID, ve.Code, ve.Field)
			handlers.RespondValidationError(w, ve)
			return
		}

		switch {
		case errors.Is(err, mutateReservation.ErrPropertyNotFound):
			h.logger.Warn("POST /reservations - Property not found: property_id=%s", req.PropertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: operator=%s, error=%v", operatorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !outcome.Applied() {
		h.logger.Warn("POST /reservations - Create rolled back: operator=%s, reason=%s", operatorID, outcome.Reason)
	} else {
		h.logger.Info("POST /reservations - Reservation created: operator=%s, reservation_id=%s", operatorID, outcome.Reservation.ID)
	}
	handlers.RespondMutation(w, http.StatusCreated, outcome)
}
