package occupancy

import (
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/rental-guide-service/internal/domain"
)

// ErrMalformedDelivery возвращается, если полный набор содержит битую запись
var ErrMalformedDelivery = errors.New("occupancy: malformed delivery")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// sourceState последний полный набор одного источника
type sourceState[T any] struct {
	byProperty map[string][]T
	delivered  bool
	lastErr    error
}

func (s *sourceState[T]) ready() bool {
	return s.delivered && s.lastErr == nil
}

// Tracker хранит последние полные наборы бронирований и блокировок,
// доставленные подписками, и выдает по ним снимки занятости.
type Tracker struct {
	mu           sync.RWMutex
	reservations sourceState[domain.Reservation]
	blocks       sourceState[domain.BlockedDateRange]
	logger       Logger
}

// NewTracker создает трекер. До первой доставки обоих источников все снимки неуверенные.
func NewTracker(logger Logger) *Tracker {
	return &Tracker{logger: logger}
}

// SetReservations заменяет набор бронирований целиком.
// Битая запись помечает источник как сбойный, прежний набор не используется.
func (t *Tracker) SetReservations(list []domain.Reservation) error {
	grouped := make(map[string][]domain.Reservation)
	for i := range list {
		if err := list[i].CheckIntegrity(); err != nil {
			wrapped := fmt.Errorf("%w: %w", ErrMalformedDelivery, err)
			t.MarkReservationsFailed(wrapped)
			return wrapped
		}
		grouped[list[i].PropertyID] = append(grouped[list[i].PropertyID], list[i].Clone())
	}

	t.mu.Lock()
	t.reservations = sourceState[domain.Reservation]{byProperty: grouped, delivered: true}
	t.mu.Unlock()

	t.logger.Info("SetReservations: applied full set count=%d properties=%d", len(list), len(grouped))
	return nil
}

// SetBlocks заменяет набор блокировок целиком
func (t *Tracker) SetBlocks(list []domain.BlockedDateRange) error {
	grouped := make(map[string][]domain.BlockedDateRange)
	for i := range list {
		if err := list[i].CheckIntegrity(); err != nil {
			wrapped := fmt.Errorf("%w: %w", ErrMalformedDelivery, err)
			t.MarkBlocksFailed(wrapped)
			return wrapped
		}
		grouped[list[i].PropertyID] = append(grouped[list[i].PropertyID], list[i])
	}

	t.mu.Lock()
	t.blocks = sourceState[domain.BlockedDateRange]{byProperty: grouped, delivered: true}
	t.mu.Unlock()

	t.logger.Info("SetBlocks: applied full set count=%d properties=%d", len(list), len(grouped))
	return nil
}

// MarkReservationsFailed помечает источник бронирований сбойным до следующей успешной доставки
func (t *Tracker) MarkReservationsFailed(err error) {
	t.mu.Lock()
	t.reservations.lastErr = err
	t.mu.Unlock()

	t.logger.Error("MarkReservationsFailed: occupancy is uncertain until next delivery: %v", err)
}

// MarkBlocksFailed помечает источник блокировок сбойным до следующей успешной доставки
func (t *Tracker) MarkBlocksFailed(err error) {
	t.mu.Lock()
	t.blocks.lastErr = err
	t.mu.Unlock()

	t.logger.Error("MarkBlocksFailed: occupancy is uncertain until next delivery: %v", err)
}

// Ready возвращает true, если оба источника прислали корректные наборы
func (t *Tracker) Ready() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.reservations.ready() && t.blocks.ready()
}

// Snapshot возвращает снимок занятости объекта
func (t *Tracker) Snapshot(propertyID string) *Index {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.reservations.ready() || !t.blocks.ready() {
		return UncertainIndex(propertyID)
	}

	// Срезы в map заменяются только целиком, поэтому их можно отдавать без копирования
	return NewIndex(propertyID, t.reservations.byProperty[propertyID], t.blocks.byProperty[propertyID])
}
