package get_calendar

import (
	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/selection"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// Request модель запроса месяца календаря
type Request struct {
	PropertyID string
	Month      string      // "YYYY-MM", пусто = текущий месяц объекта
	Start      *types.Date // Текущая дата заезда, если выбрана
	End        *types.Date // Текущая дата выезда, если выбрана
}

// Response модель ответа с днями месяца
type Response struct {
	PropertyID string
	Month      string // "YYYY-MM"
	Label      string // Например "Março de 2024"
	Today      types.Date
	Selection  selection.State
	Days       []domain.CalendarDay
	Uncertain  bool // Данные о занятости неполные, все даты показаны занятыми
}
