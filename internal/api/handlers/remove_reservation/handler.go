package remove_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	"github.com/m04kA/rental-guide-service/internal/api/middleware"
	mutateReservation "github.com/m04kA/rental-guide-service/internal/usecase/mutate_reservation"
)

// ConfirmRemovalHeader должен содержать id удаляемого бронирования
const ConfirmRemovalHeader = "X-Confirm-Removal"

const (
	msgMissingOperatorID = "identificação do operador ausente"
	msgConfirmation      = "confirme a exclusão informando o código da reserva"
	msgPendingCreate     = "a reserva ainda está sendo criada"
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

// Handle DELETE /api/v1/reservations/{reservationId}
// Header X-Confirm-Removal: {reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	operatorID, ok := middleware.GetOperatorID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /reservations/{id} - Missing operator ID")
		handlers.RespondUnauthorized(w, msgMissingOperatorID)
		return
	}

	confirmation := r.Header.Get(ConfirmRemovalHeader)
	outcome, err := h.useCase.Remove(r.Context(), h.sessions.Session(operatorID), reservationID, confirmation)
	if err != nil {
		switch {
		case errors.Is(err, mutateReservation.ErrConfirmationMismatch):
			h.logger.Warn("DELETE /reservations/{id} - Removal not confirmed: reservation_id=%s", reservationID)
			handlers.RespondError(w, http.StatusPreconditionRequired, msgConfirmation)

		case errors.Is(err, mutateReservation.ErrPendingCreate):
			h.logger.Warn("DELETE /reservations/{id} - Create still pending: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgPendingCreate)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to remove reservation: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !outcome.Applied() {
		h.logger.Warn("DELETE /reservations/{id} - Removal not confirmed by store: reservation_id=%s, reason=%s", reservationID, outcome.Reason)
	} else {
		h.logger.Info("DELETE /reservations/{id} - Reservation removed: operator=%s, reservation_id=%s", operatorID, reservationID)
	}
	handlers.RespondMutation(w, http.StatusNoContent, outcome)
}
