package notify

import "errors"

var (
	// ErrInvalidPayload возвращается для уведомления, которое не удалось разобрать
	ErrInvalidPayload = errors.New("notify: invalid payload")

	// ErrListenerClosed возвращается, когда канал уведомлений закрылся
	ErrListenerClosed = errors.New("notify: listener closed")

	// ErrInvalidSchedule возвращается для некорректного cron-расписания
	ErrInvalidSchedule = errors.New("notify: invalid resync schedule")
)
