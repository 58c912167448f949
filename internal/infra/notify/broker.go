package notify

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/rental-guide-service/internal/domain"
)

const (
	sourceReservations = "reservations"
	sourceBlocks       = "blocks"
)

// pingInterval период проверки соединения слушателя
const pingInterval = 90 * time.Second

// FailureHandler вызывается, когда источник не удалось перечитать
type FailureHandler func(kind domain.RecordKind, err error)

type activeSub struct {
	propertyID *string
	ch         chan []domain.Reservation
}

// Broker превращает уведомления LISTEN/NOTIFY в поставки полных наборов подписчикам.
// Каждая поставка - полная замена; подписчик, не успевший прочитать прошлую, получает только последнюю.
type Broker struct {
	listener     Listener
	channel      string
	reservations ReservationSource
	blocks       BlockSource
	metrics      Metrics
	logger       Logger

	// Чтение источника и раздача результата выполняются под одной блокировкой,
	// иначе медленное старое чтение может раздать набор после более нового
	reservationsMu sync.Mutex
	blocksMu       sync.Mutex

	mu         sync.Mutex
	activeSubs []activeSub
	blockSubs  []chan []domain.BlockedDateRange
	onFailure  []FailureHandler
}

// NewBroker создает брокер подписок
func NewBroker(
	listener Listener,
	channel string,
	reservations ReservationSource,
	blocks BlockSource,
	metrics Metrics,
	logger Logger,
) *Broker {
	return &Broker{
		listener:     listener,
		channel:      channel,
		reservations: reservations,
		blocks:       blocks,
		metrics:      metrics,
		logger:       logger,
	}
}

// SubscribeActive возвращает канал полных активных наборов.
// propertyID = nil - по всем объектам. Канал закрывается при отмене ctx.
func (b *Broker) SubscribeActive(ctx context.Context, propertyID *string) <-chan []domain.Reservation {
	ch := make(chan []domain.Reservation, 1)

	b.mu.Lock()
	b.activeSubs = append(b.activeSubs, activeSub{propertyID: propertyID, ch: ch})
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.activeSubs {
			if s.ch == ch {
				b.activeSubs = append(b.activeSubs[:i], b.activeSubs[i+1:]...)
				close(ch)
				return
			}
		}
	}()
	return ch
}

// SubscribeBlocks возвращает канал полных наборов блокировок. Канал закрывается при отмене ctx.
func (b *Broker) SubscribeBlocks(ctx context.Context) <-chan []domain.BlockedDateRange {
	ch := make(chan []domain.BlockedDateRange, 1)

	b.mu.Lock()
	b.blockSubs = append(b.blockSubs, ch)
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, c := range b.blockSubs {
			if c == ch {
				b.blockSubs = append(b.blockSubs[:i], b.blockSubs[i+1:]...)
				close(ch)
				return
			}
		}
	}()
	return ch
}

// OnFailure регистрирует обработчик неудачного перечитывания источника
func (b *Broker) OnFailure(fn FailureHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onFailure = append(b.onFailure, fn)
}

// Run слушает канал уведомлений до отмены ctx. Перед началом и после каждого
// переподключения выполняется полная пересинхронизация.
func (b *Broker) Run(ctx context.Context) error {
	if err := b.listener.Listen(b.channel); err != nil {
		return err
	}
	b.logger.Info("Broker: listening on channel %q", b.channel)

	b.Resync(ctx)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	notifications := b.listener.NotificationChannel()
	for {
		select {
		case <-ctx.Done():
			return nil

		case n, ok := <-notifications:
			if !ok {
				return ErrListenerClosed
			}
			if n == nil {
				// соединение восстановлено, уведомления могли потеряться
				b.logger.Warn("Broker: listener reconnected, resyncing")
				b.Resync(ctx)
				continue
			}

			payload, err := DecodePayload(n.Extra)
			if err != nil {
				b.logger.Warn("Broker: %v, resyncing everything", err)
				b.Resync(ctx)
				continue
			}
			b.Reload(ctx, payload.Kind)

		case <-ticker.C:
			if err := b.listener.Ping(); err != nil {
				b.logger.Warn("Broker: listener ping failed: %v", err)
			}
		}
	}
}

// Resync перечитывает оба источника и поставляет полные наборы
func (b *Broker) Resync(ctx context.Context) {
	okReservations := b.Reload(ctx, domain.RecordReservation)
	okBlocks := b.Reload(ctx, domain.RecordBlock)

	if okReservations && okBlocks {
		b.metrics.ObserveResync("ok")
		return
	}
	b.metrics.ObserveResync("error")
}

// Reload перечитывает один источник. Возвращает false, если чтение не удалось.
// Перечитывания одного источника не пересекаются.
func (b *Broker) Reload(ctx context.Context, kind domain.RecordKind) bool {
	switch kind {
	case domain.RecordReservation:
		b.reservationsMu.Lock()
		defer b.reservationsMu.Unlock()

		list, err := b.reservations.ListActive(ctx, nil)
		if err != nil {
			b.fail(kind, sourceReservations, err)
			return false
		}
		b.deliverReservations(list)
		b.metrics.ObserveDelivery(sourceReservations, "ok")
		return true

	case domain.RecordBlock:
		b.blocksMu.Lock()
		defer b.blocksMu.Unlock()

		list, err := b.blocks.List(ctx, nil)
		if err != nil {
			b.fail(kind, sourceBlocks, err)
			return false
		}
		b.deliverBlocks(list)
		b.metrics.ObserveDelivery(sourceBlocks, "ok")
		return true
	}

	b.logger.Warn("Broker: reload of unknown kind %q ignored", kind)
	return false
}

func (b *Broker) fail(kind domain.RecordKind, source string, err error) {
	b.logger.Error("Broker: failed to reload %s: %v", source, err)
	b.metrics.ObserveDelivery(source, "error")

	b.mu.Lock()
	handlers := append([]FailureHandler(nil), b.onFailure...)
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(kind, err)
	}
}

func (b *Broker) deliverReservations(list []domain.Reservation) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.activeSubs {
		offer(s.ch, filterByProperty(list, s.propertyID))
	}
}

func (b *Broker) deliverBlocks(list []domain.BlockedDateRange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.blockSubs {
		offer(ch, list)
	}
}

// offer кладет значение в канал с буфером 1, вытесняя непрочитанное
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func filterByProperty(list []domain.Reservation, propertyID *string) []domain.Reservation {
	if propertyID == nil {
		return list
	}
	out := make([]domain.Reservation, 0, len(list))
	for _, r := range list {
		if r.PropertyID == *propertyID {
			out = append(out, r)
		}
	}
	return out
}
