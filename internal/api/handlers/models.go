package handlers

import (
	"maps"
	"time"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// ReservationResponse бронирование в ответах API оператора
type ReservationResponse struct {
	ID           string            `json:"id"`
	PropertyID   string            `json:"propertyId"`
	GuestName    string            `json:"guestName"`
	Status       string            `json:"status"`
	CheckIn      types.Date        `json:"checkIn"`
	Checkout     types.Date        `json:"checkout"`
	Nights       int               `json:"nights"`
	InternalNote string            `json:"internalNote,omitempty"`
	Details      map[string]string `json:"details"`
	Pending      bool              `json:"pending,omitempty"` // Создание еще не подтверждено хранилищем
	CreatedAt    *string           `json:"createdAt,omitempty"`
	UpdatedAt    *string           `json:"updatedAt,omitempty"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) ReservationResponse {
	details := maps.Clone(r.Details)
	if details == nil {
		details = map[string]string{}
	}

	resp := ReservationResponse{
		ID:           r.ID,
		PropertyID:   r.PropertyID,
		GuestName:    r.GuestName,
		Status:       string(r.Status),
		CheckIn:      r.CheckIn,
		Checkout:     r.Checkout,
		Nights:       r.Stay().Nights(),
		InternalNote: r.InternalNote,
		Details:      details,
		Pending:      r.IsPlaceholder(),
	}
	if !r.CreatedAt.IsZero() {
		createdAt := r.CreatedAt.Format(time.RFC3339)
		resp.CreatedAt = &createdAt
	}
	if !r.UpdatedAt.IsZero() {
		updatedAt := r.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// FromDomainReservations конвертирует список, никогда не возвращая nil
func FromDomainReservations(list []domain.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for i := range list {
		out = append(out, FromDomainReservation(&list[i]))
	}
	return out
}

// BlockResponse блокировка дат
type BlockResponse struct {
	ID         string     `json:"id"`
	PropertyID string     `json:"propertyId"`
	StartDate  types.Date `json:"startDate"`
	EndDate    types.Date `json:"endDate"`
	Reason     *string    `json:"reason,omitempty"`
	CreatedAt  string     `json:"createdAt"`
}

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.BlockedDateRange) BlockResponse {
	return BlockResponse{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}

// ParseDateParam разбирает необязательную дату YYYY-MM-DD; пустая строка дает nil
func ParseDateParam(s string) (*types.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := types.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
