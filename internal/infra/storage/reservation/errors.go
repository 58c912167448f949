package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")

	// ErrInvalidCursor возвращается для курсора, который не выдавал этот репозиторий
	ErrInvalidCursor = errors.New("reservation.repository: invalid cursor")

	// ErrDetails возвращается при ошибке (де)сериализации дополнительных полей
	ErrDetails = errors.New("reservation.repository: invalid details")
)
