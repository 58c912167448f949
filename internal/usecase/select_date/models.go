package select_date

import (
	"github.com/m04kA/rental-guide-service/internal/service/selection"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// Request модель клика по дате
type Request struct {
	PropertyID string
	Start      *types.Date // Текущая дата заезда, если выбрана
	End        *types.Date // Текущая дата выезда, если выбрана
	Date       types.Date  // Дата, по которой кликнул гость
}

// Response новое состояние выбора
type Response struct {
	State     selection.State
	Ignored   bool   // Дата прошедшая или занята, состояние не изменилось
	Conflict  bool   // Внутри диапазона есть занятые даты
	Warning   string // Сообщение гостю при конфликте
	Uncertain bool   // Данные о занятости неполные
}
