package list_reservations

import (
	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	"github.com/m04kA/rental-guide-service/internal/service/feed"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// FeedResponse HTTP response model
type FeedResponse struct {
	Today        types.Date                     `json:"today"`
	LeavingToday []handlers.ReservationResponse `json:"leavingToday"`
	HostedNow    []handlers.ReservationResponse `json:"hostedNow"`
	Upcoming     []handlers.ReservationResponse `json:"upcoming"`
	History      []MonthGroupResponse           `json:"history"`
	HasMore      bool                           `json:"hasMore"`
	Loading      bool                           `json:"loading"`
	Total        int                            `json:"total"`
	HistoryError string                         `json:"historyError,omitempty"` // Последняя неудачная загрузка архива
}

// MonthGroupResponse группа архива по месяцу выезда
type MonthGroupResponse struct {
	Month        string                         `json:"month"`
	Label        string                         `json:"label"`
	Reservations []handlers.ReservationResponse `json:"reservations"`
}

// FromView конвертирует представление ленты в HTTP response
func FromView(today types.Date, view feed.View, lastErr error) *FeedResponse {
	history := make([]MonthGroupResponse, 0, len(view.History))
	for _, g := range view.History {
		history = append(history, MonthGroupResponse{
			Month:        g.Key,
			Label:        g.Label,
			Reservations: handlers.FromDomainReservations(g.Reservations),
		})
	}

	resp := &FeedResponse{
		Today:        today,
		LeavingToday: handlers.FromDomainReservations(view.LeavingToday),
		HostedNow:    handlers.FromDomainReservations(view.Hosted),
		Upcoming:     handlers.FromDomainReservations(view.Upcoming),
		History:      history,
		HasMore:      view.HasMore,
		Loading:      view.Loading,
		Total:        view.Total(),
	}
	if lastErr != nil {
		resp.HistoryError = msgHistoryUnavailable
	}
	return resp
}
