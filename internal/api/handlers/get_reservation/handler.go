package get_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	"github.com/m04kA/rental-guide-service/internal/api/middleware"
	"github.com/m04kA/rental-guide-service/internal/service/reservations"
)

const (
	msgMissingOperatorID = "identificação do operador ausente"
	msgNotFound          = "reserva não encontrada"
)

type Handler struct {
	service  ReservationService
	sessions SessionProvider
	logger   Logger
}

func NewHandler(service ReservationService, sessions SessionProvider, logger Logger) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		logger:   logger,
	}
}

// Handle GET /api/v1/reservations/{reservationId}
// Сначала смотрит в ленту оператора, так видны и неподтвержденные изменения.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	operatorID, ok := middleware.GetOperatorID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations/{id} - Missing operator ID")
		handlers.RespondUnauthorized(w, msgMissingOperatorID)
		return
	}

	if res, found := h.sessions.Session(operatorID).Lookup(reservationID); found {
		handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainReservation(&res))
		return
	}

	res, err := h.service.Get(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/{id} - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /reservations/{id} - Failed to get reservation: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/{id} - Reservation retrieved from store: reservation_id=%s", reservationID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainReservation(res))
}
