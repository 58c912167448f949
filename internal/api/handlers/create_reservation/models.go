package create_reservation

import (
	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	PropertyID   string            `json:"propertyId"`
	GuestName    string            `json:"guestName"`
	Status       string            `json:"status,omitempty"` // Пусто = pending
	CheckIn      types.Date        `json:"checkIn"`
	Checkout     types.Date        `json:"checkout"`
	InternalNote string            `json:"internalNote,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
}

// ToDraft конвертирует HTTP запрос в черновик бронирования
func (r *CreateReservationRequest) ToDraft() domain.ReservationDraft {
	return domain.ReservationDraft{
		PropertyID:   r.PropertyID,
		GuestName:    r.GuestName,
		Status:       domain.ReservationStatus(r.Status),
		CheckIn:      r.CheckIn,
		Checkout:     r.Checkout,
		InternalNote: r.InternalNote,
		Details:      r.Details,
	}
}
