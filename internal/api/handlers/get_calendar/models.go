package get_calendar

import (
	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	getCalendar "github.com/m04kA/rental-guide-service/internal/usecase/get_calendar"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	PropertyID string        `json:"propertyId"`
	Month      string        `json:"month"`
	Label      string        `json:"label"`
	Today      types.Date    `json:"today"`
	Selection  SelectionView `json:"selection"`
	Days       []DayView     `json:"days"`
	Uncertain  bool          `json:"uncertain"`
}

// SelectionView текущее состояние выбора
type SelectionView struct {
	Kind  string     `json:"kind"`
	Start types.Date `json:"start"`
	End   types.Date `json:"end"`
}

// DayView один день месяца
type DayView struct {
	Date       types.Date `json:"date"`
	Status     string     `json:"status"`
	Reason     string     `json:"reason"`
	Selectable bool       `json:"selectable"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(propertyID, month, start, end string) (*getCalendar.Request, error) {
	startDate, err := handlers.ParseDateParam(start)
	if err != nil {
		return nil, err
	}
	endDate, err := handlers.ParseDateParam(end)
	if err != nil {
		return nil, err
	}

	return &getCalendar.Request{
		PropertyID: propertyID,
		Month:      month,
		Start:      startDate,
		End:        endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]DayView, len(resp.Days))
	for i := range resp.Days {
		d := &resp.Days[i]
		days[i] = DayView{
			Date:       d.Date,
			Status:     string(d.Status),
			Reason:     d.Reason,
			Selectable: d.IsSelectable(),
		}
	}

	return &CalendarResponse{
		PropertyID: resp.PropertyID,
		Month:      resp.Month,
		Label:      resp.Label,
		Today:      resp.Today,
		Selection: SelectionView{
			Kind:  string(resp.Selection.Kind),
			Start: resp.Selection.Start,
			End:   resp.Selection.End,
		},
		Days:      days,
		Uncertain: resp.Uncertain,
	}
}
