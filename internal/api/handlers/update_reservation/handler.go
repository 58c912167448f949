package update_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	"github.com/m04kA/rental-guide-service/internal/api/middleware"
	"github.com/m04kA/rental-guide-service/internal/domain"
	mutateReservation "github.com/m04kA/rental-guide-service/internal/usecase/mutate_reservation"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgEmptyPatch         = "nenhum campo para alterar"
	msgMissingOperatorID  = "identificação do operador ausente"
	msgNotFound           = "reserva não encontrada"
	msgPropertyNotFound   = "imóvel não encontrado"
	msgPendingCreate      = "a reserva ainda está sendo criada"
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

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	operatorID, ok := middleware.GetOperatorID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id} - Missing operator ID")
		handlers.RespondUnauthorized(w, msgMissingOperatorID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	patch := req.ToPatch()
	if patch.IsEmpty() {
		h.logger.Warn("PATCH /reservations/{id} - Empty patch: reservation_id=%s", reservationID)
		handlers.RespondBadRequest(w, msgEmptyPatch)
		return
	}

	outcome, err := h.useCase.Update(r.Context(), h.sessions.Session(operatorID), reservationID, patch)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			h.logger.Warn("PATCH /reservations/{id} - Validation failed: reservation_id=%s, code=%s, field=%s",
				reservationID, ve.Code, ve.Field)
			handlers.RespondValidationError(w, ve)
			return
		}

		switch {
		case errors.Is(err, mutateReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, mutateReservation.ErrPropertyNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Property not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, mutateReservation.ErrPendingCreate):
			h.logger.Warn("PATCH /reservations/{id} - Create still pending: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgPendingCreate)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to update reservation: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !outcome.Applied() {
		h.logger.Warn("PATCH /reservations/{id} - Update not confirmed: reservation_id=%s, reason=%s", reservationID, outcome.Reason)
	} else {
		h.logger.Info("PATCH /reservations/{id} - Reservation updated: operator=%s, reservation_id=%s", operatorID, reservationID)
	}
	handlers.RespondMutation(w, http.StatusOK, outcome)
}
