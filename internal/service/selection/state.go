package selection

import (
	"errors"
	"fmt"

	"github.com/m04kA/rental-guide-service/pkg/types"
)

// ErrInvalidState возвращается при некорректном состоянии, пришедшем извне
var ErrInvalidState = errors.New("selection: invalid state")

// Kind вид состояния выбора диапазона
type Kind string

const (
	KindEmpty         Kind = "empty"
	KindStartSelected Kind = "start_selected"
	KindRangeSelected Kind = "range_selected"
)

// State состояние выбора диапазона дат.
// Значение передается между запросами, сама машина состояний ничего не хранит.
type State struct {
	Kind  Kind
	Start types.Date
	End   types.Date
}

// Empty ничего не выбрано
func Empty() State {
	return State{Kind: KindEmpty}
}

// StartSelected выбрана дата заезда
func StartSelected(start types.Date) State {
	return State{Kind: KindStartSelected, Start: start}
}

// RangeSelected выбран диапазон
func RangeSelected(start, end types.Date) State {
	return State{Kind: KindRangeSelected, Start: start, End: end}
}

// FromBounds восстанавливает состояние по границам: без границ - Empty,
// только start - StartSelected, обе - RangeSelected
func FromBounds(start, end types.Date) (State, error) {
	switch {
	case start.IsZero() && end.IsZero():
		return Empty(), nil
	case end.IsZero():
		return StartSelected(start), nil
	case start.IsZero():
		return State{}, fmt.Errorf("%w: end without start", ErrInvalidState)
	}

	s := RangeSelected(start, end)
	if err := s.Validate(); err != nil {
		return State{}, err
	}
	return s, nil
}

// Validate проверяет согласованность полей
func (s State) Validate() error {
	switch s.Kind {
	case KindEmpty:
		if !s.Start.IsZero() || !s.End.IsZero() {
			return fmt.Errorf("%w: empty state with dates", ErrInvalidState)
		}
	case KindStartSelected:
		if s.Start.IsZero() || !s.End.IsZero() {
			return fmt.Errorf("%w: start_selected needs only start", ErrInvalidState)
		}
	case KindRangeSelected:
		if s.Start.IsZero() || s.End.IsZero() {
			return fmt.Errorf("%w: range_selected needs start and end", ErrInvalidState)
		}
		if !s.End.After(s.Start) {
			return fmt.Errorf("%w: end %s is not after start %s", ErrInvalidState, s.End, s.Start)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidState, s.Kind)
	}
	return nil
}

func (s State) String() string {
	switch s.Kind {
	case KindStartSelected:
		return fmt.Sprintf("StartSelected(%s)", s.Start)
	case KindRangeSelected:
		return fmt.Sprintf("RangeSelected(%s, %s)", s.Start, s.End)
	}
	return "Empty"
}
