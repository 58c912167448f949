package update_reservation

import (
	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// UpdateReservationRequest HTTP request model: отсутствующие поля не меняются,
// пустое значение в details удаляет ключ
type UpdateReservationRequest struct {
	PropertyID   *string           `json:"propertyId,omitempty"`
	GuestName    *string           `json:"guestName,omitempty"`
	Status       *string           `json:"status,omitempty"`
	CheckIn      *types.Date       `json:"checkIn,omitempty"`
	Checkout     *types.Date       `json:"checkout,omitempty"`
	InternalNote *string           `json:"internalNote,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
}

// ToPatch конвертирует HTTP запрос в частичное обновление
func (r *UpdateReservationRequest) ToPatch() domain.ReservationPatch {
	patch := domain.ReservationPatch{
		GuestName:    r.GuestName,
		CheckIn:      r.CheckIn,
		Checkout:     r.Checkout,
		PropertyID:   r.PropertyID,
		InternalNote: r.InternalNote,
		Details:      r.Details,
	}
	if r.Status != nil {
		status := domain.ReservationStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}
