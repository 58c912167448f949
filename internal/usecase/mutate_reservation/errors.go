package mutate_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено ни в ленте, ни в хранилище
	ErrReservationNotFound = errors.New("mutate_reservation: reservation not found")

	// ErrPropertyNotFound возвращается, когда объект бронирования не найден
	ErrPropertyNotFound = errors.New("mutate_reservation: property not found")

	// ErrConfirmationMismatch возвращается, когда подтверждение удаления не совпадает с id
	ErrConfirmationMismatch = errors.New("mutate_reservation: removal confirmation does not match")

	// ErrPendingCreate возвращается при попытке изменить запись, создание которой еще не подтверждено
	ErrPendingCreate = errors.New("mutate_reservation: reservation is still being created")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("mutate_reservation: internal error")
)
