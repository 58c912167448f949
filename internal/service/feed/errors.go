package feed

import "errors"

var (
	// ErrHistoryUnavailable временная ошибка загрузки страницы архива, повтор допустим
	ErrHistoryUnavailable = errors.New("feed: history page unavailable")

	// ErrMalformedDelivery набор или страница содержит битую запись
	ErrMalformedDelivery = errors.New("feed: malformed delivery")

	// ErrPlaceholderNotFound локальная запись создания уже исчезла из ленты
	ErrPlaceholderNotFound = errors.New("feed: placeholder not found")
)
