package select_date

import (
	selectDate "github.com/m04kA/rental-guide-service/internal/usecase/select_date"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// SelectDateRequest HTTP request model
type SelectDateRequest struct {
	Start *types.Date `json:"start,omitempty"`
	End   *types.Date `json:"end,omitempty"`
	Date  types.Date  `json:"date"`
}

// SelectDateResponse HTTP response model
type SelectDateResponse struct {
	Kind      string     `json:"kind"`
	Start     types.Date `json:"start"`
	End       types.Date `json:"end"`
	Ignored   bool       `json:"ignored"`
	Conflict  bool       `json:"conflict"`
	Warning   string     `json:"warning,omitempty"`
	Uncertain bool       `json:"uncertain"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SelectDateRequest) ToUseCaseRequest(propertyID string) *selectDate.Request {
	return &selectDate.Request{
		PropertyID: propertyID,
		Start:      nonZero(r.Start),
		End:        nonZero(r.End),
		Date:       r.Date,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *selectDate.Response) *SelectDateResponse {
	return &SelectDateResponse{
		Kind:      string(resp.State.Kind),
		Start:     resp.State.Start,
		End:       resp.State.End,
		Ignored:   resp.Ignored,
		Conflict:  resp.Conflict,
		Warning:   resp.Warning,
		Uncertain: resp.Uncertain,
	}
}

// nonZero превращает "start": null в отсутствие границы
func nonZero(d *types.Date) *types.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}
