package get_calendar

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = errors.New("property not found")

	// ErrInvalidMonth возвращается при месяце не в формате YYYY-MM
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidSelection возвращается при некорректных границах выбора
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
