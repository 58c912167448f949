package selection

import (
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// WarningRangeConflict показывается гостю, когда в выбранном периоде есть занятые даты
const WarningRangeConflict = "O período selecionado contém datas ocupadas. Selecione uma nova data de saída."

// Availability снимок занятости, по которому вычисляется переход
type Availability interface {
	IsOccupied(date types.Date) bool
	RangeHasConflict(start, end types.Date) bool
}

// Outcome результат клика по дате
type Outcome struct {
	State    State
	Ignored  bool   // Клик по прошедшей или занятой дате, состояние не изменилось
	Conflict bool   // Внутри диапазона есть занятые даты, выбор начат заново с кликнутой даты
	Warning  string // Сообщение для гостя при конфликте
}

// IsPast возвращает true для сегодняшней и прошедших дат: они недоступны для выбора
func IsPast(date, today types.Date) bool {
	return !date.After(today)
}

// SelectDate вычисляет переход машины состояний по клику на date
func SelectDate(state State, date types.Date, avail Availability, today types.Date) Outcome {
	if IsPast(date, today) || avail.IsOccupied(date) {
		return Outcome{State: state, Ignored: true}
	}

	switch state.Kind {
	case KindStartSelected:
		start := state.Start
		switch {
		case date.Before(start):
			return Outcome{State: StartSelected(date)}
		case date.Equal(start):
			return Outcome{State: Empty()}
		}

		if avail.RangeHasConflict(start, date) {
			return Outcome{
				State:    StartSelected(date),
				Conflict: true,
				Warning:  WarningRangeConflict,
			}
		}
		return Outcome{State: RangeSelected(start, date)}

	default:
		// Empty и RangeSelected: любой допустимый клик начинает выбор заново
		return Outcome{State: StartSelected(date)}
	}
}
