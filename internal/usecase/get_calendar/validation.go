package get_calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/selection"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// parseMonth разбирает "YYYY-MM"; пустая строка означает месяц today
func parseMonth(month string, today types.Date) (int, time.Month, error) {
	if month == "" {
		return today.Year(), today.Month(), nil
	}

	t, err := time.Parse(domain.MonthFormat, month)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	return t.Year(), t.Month(), nil
}

// stateFromRequest восстанавливает состояние выбора по границам запроса
func stateFromRequest(req *Request) (selection.State, error) {
	var start, end types.Date
	if req.Start != nil {
		start = *req.Start
	}
	if req.End != nil {
		end = *req.End
	}

	state, err := selection.FromBounds(start, end)
	if err != nil {
		return selection.State{}, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	return state, nil
}
