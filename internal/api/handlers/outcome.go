package handlers

import (
	"net/http"

	mutateReservation "github.com/m04kA/rental-guide-service/internal/usecase/mutate_reservation"
)

const (
	msgRangeOccupied     = "as datas escolhidas já estão ocupadas"
	msgReservationGone   = "a reserva não existe mais"
	msgWriteNotConfirmed = "a alteração não foi confirmada, tente novamente"
)

// MutationResponse ответ на подтвержденное изменение бронирования
type MutationResponse struct {
	Outcome     string               `json:"outcome"`
	Reservation *ReservationResponse `json:"reservation,omitempty"`
}

// MutationFailureResponse ответ на неподтвержденное изменение
type MutationFailureResponse struct {
	Error   string `json:"error"`
	Outcome string `json:"outcome"`
	Reason  string `json:"reason"`
}

// RespondMutation пишет ответ по исходу изменения бронирования.
// status - код ответа при подтвержденном изменении.
func RespondMutation(w http.ResponseWriter, status int, o mutateReservation.Outcome) {
	if o.Applied() {
		if o.Reservation == nil {
			RespondJSON(w, status, nil)
			return
		}
		res := FromDomainReservation(o.Reservation)
		RespondJSON(w, status, MutationResponse{Outcome: string(o.Kind), Reservation: &res})
		return
	}

	code, message := http.StatusServiceUnavailable, msgWriteNotConfirmed
	switch o.Reason {
	case mutateReservation.ReasonRangeOccupied:
		code, message = http.StatusConflict, msgRangeOccupied
	case mutateReservation.ReasonNotFound:
		code, message = http.StatusNotFound, msgReservationGone
	}

	RespondJSON(w, code, MutationFailureResponse{
		Error:   message,
		Outcome: string(o.Kind),
		Reason:  o.Reason,
	})
}
