package feed

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/m04kA/rental-guide-service/internal/domain"
)

// Hub держит по одной ленте на сессию оператора и раздает им общий активный набор.
// Неактивные сессии вытесняются по истечении ttl с последнего обращения.
type Hub struct {
	sessions *ttlcache.Cache[string, *Reconciler]

	// mu упорядочивает создание сессий и смену активного набора
	mu           sync.Mutex
	latestActive []domain.Reservation
	haveActive   bool

	source   HistorySource
	pageSize int
	metrics  Metrics
	logger   Logger
}

// NewHub создает хаб сессий
func NewHub(source HistorySource, pageSize int, sessionTTL time.Duration, metrics Metrics, logger Logger) *Hub {
	h := &Hub{
		sessions: ttlcache.New[string, *Reconciler](
			ttlcache.WithTTL[string, *Reconciler](sessionTTL),
		),
		source:   source,
		pageSize: pageSize,
		metrics:  metrics,
		logger:   logger,
	}

	h.sessions.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *Reconciler]) {
		if reason == ttlcache.EvictionReasonExpired {
			h.logger.Info("Hub: session expired operator=%s", item.Key())
		}
	})
	return h
}

// Session возвращает ленту оператора, создавая ее при первом обращении.
// Новая лента сразу получает последний известный активный набор.
func (h *Hub) Session(operatorID string) *Reconciler {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Get продлевает срок жизни сессии
	if item := h.sessions.Get(operatorID); item != nil {
		return item.Value()
	}

	rec := NewReconciler(h.source, h.pageSize, h.metrics, h.logger)
	if h.haveActive {
		if err := rec.ReplaceActive(h.latestActive); err != nil {
			h.logger.Error("Hub: failed to seed session operator=%s: %v", operatorID, err)
		}
	}
	h.sessions.Set(operatorID, rec, ttlcache.DefaultTTL)

	h.metrics.SetActiveSessions(h.sessions.Len())
	h.logger.Info("Hub: session opened operator=%s", operatorID)
	return rec
}

// PublishActive раздает полный активный набор всем живым сессиям
func (h *Hub) PublishActive(list []domain.Reservation) error {
	for i := range list {
		if err := list[i].CheckIntegrity(); err != nil {
			h.logger.Error("Hub: rejected active set: %v", err)
			return err
		}
	}

	// Сессия, созданная после снимка, засеивается уже новым набором
	snapshot := slices.Clone(list)
	h.mu.Lock()
	h.latestActive = snapshot
	h.haveActive = true
	items := h.sessions.Items()
	h.mu.Unlock()

	for operatorID, item := range items {
		if item.IsExpired() {
			continue
		}
		if err := item.Value().ReplaceActive(snapshot); err != nil {
			h.logger.Error("Hub: failed to apply active set operator=%s: %v", operatorID, err)
		}
	}
	return nil
}

// Forget убирает удаленное бронирование из всех сессий, включая загруженную историю
func (h *Hub) Forget(id string) {
	h.mu.Lock()
	items := h.sessions.Items()
	h.mu.Unlock()

	for _, item := range items {
		item.Value().RemoveLocal(id)
	}
}

// Run применяет поставки подписки на активные бронирования до закрытия канала или отмены ctx
func (h *Hub) Run(ctx context.Context, updates <-chan []domain.Reservation) {
	for {
		select {
		case <-ctx.Done():
			return
		case list, ok := <-updates:
			if !ok {
				h.logger.Warn("Hub: active subscription closed")
				return
			}
			_ = h.PublishActive(list)
		}
	}
}

// RunJanitor периодически вытесняет истекшие сессии
func (h *Hub) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.sessions.DeleteExpired()
			h.metrics.SetActiveSessions(h.sessions.Len())
		}
	}
}

// SessionCount число сессий в кэше
func (h *Hub) SessionCount() int {
	return h.sessions.Len()
}
