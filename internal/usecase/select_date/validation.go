package select_date

import (
	"fmt"

	"github.com/m04kA/rental-guide-service/internal/service/selection"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// validateRequest проверяет запрос и восстанавливает текущее состояние выбора
func validateRequest(req *Request) (selection.State, error) {
	if req.PropertyID == "" {
		return selection.State{}, fmt.Errorf("%w: property id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return selection.State{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	var start, end types.Date
	if req.Start != nil {
		start = *req.Start
	}
	if req.End != nil {
		end = *req.End
	}

	state, err := selection.FromBounds(start, end)
	if err != nil {
		return selection.State{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return state, nil
}
