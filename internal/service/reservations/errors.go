package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrRangeOccupied возвращается, когда даты проживания пересекаются с другим бронированием или блокировкой
	ErrRangeOccupied = errors.New("range occupied")

	// ErrInvalidCursor возвращается для непрозрачного курсора, который сервис не выдавал
	ErrInvalidCursor = errors.New("invalid history cursor")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
