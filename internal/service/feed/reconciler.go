package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

type setKind int

const (
	setActive setKind = iota
	setHistory
)

// entry копия бронирования в одном из наборов.
// seq - порядковый номер записи в набор (при совпадении id побеждает больший),
// ordinal - стабильная позиция, сохраняется при замене временного id на настоящий.
type entry struct {
	res     domain.Reservation
	seq     uint64
	ordinal uint64
}

// Reconciler объединяет активный набор (push, полная замена) и архив (страницы по курсору)
// в одно представление без дублей. Все события применяются под одной блокировкой,
// загрузка страниц выполняется вне ее.
type Reconciler struct {
	mu      sync.Mutex
	active  map[string]*entry
	history map[string]*entry
	seq     uint64
	ordinal uint64

	cursor  string
	hasMore bool
	loading bool
	lastErr error

	source   HistorySource
	pageSize int
	metrics  Metrics
	logger   Logger
}

// NewReconciler создает ленту. До первой загрузки считается, что архив не пуст.
func NewReconciler(source HistorySource, pageSize int, metrics Metrics, logger Logger) *Reconciler {
	if pageSize <= 0 {
		pageSize = domain.DefaultHistoryPageSize
	}
	return &Reconciler{
		active:   make(map[string]*entry),
		history:  make(map[string]*entry),
		hasMore:  true,
		source:   source,
		pageSize: pageSize,
		metrics:  metrics,
		logger:   logger,
	}
}

// ReplaceActive полностью заменяет активный набор.
// Локальные записи незавершенных созданий (tmp-*) переживают замену.
// Набор с битой записью отклоняется целиком, прежнее состояние сохраняется.
func (r *Reconciler) ReplaceActive(list []domain.Reservation) error {
	for i := range list {
		if err := list[i].CheckIntegrity(); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedDelivery, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make(map[string]*entry, len(list))
	for id, e := range r.active {
		if domain.IsPlaceholderID(id) {
			next[id] = e
		}
	}
	for i := range list {
		res := list[i].Clone()
		next[res.ID] = &entry{res: res, seq: r.nextSeq(), ordinal: r.ordinalFor(res.ID)}
	}
	r.active = next

	return nil
}

// LoadMore загружает следующую страницу архива.
// Пока идет загрузка или архив исчерпан, вызов ничего не делает.
// При ошибке загруженная история и флаг hasMore не меняются.
func (r *Reconciler) LoadMore(ctx context.Context) (LoadResult, error) {
	r.mu.Lock()
	if r.loading || !r.hasMore {
		res := LoadResult{Skipped: true, HasMore: r.hasMore}
		r.mu.Unlock()
		return res, nil
	}
	r.loading = true
	cursor := r.cursor
	r.mu.Unlock()

	page, err := r.source.FetchHistoryPage(ctx, cursor, r.pageSize)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false

	if err != nil {
		r.lastErr = err
		r.metrics.ObserveHistoryPage("error")
		r.logger.Warn("LoadMore: failed to fetch page cursor=%q: %v", cursor, err)
		return LoadResult{HasMore: r.hasMore}, fmt.Errorf("%w: %v", ErrHistoryUnavailable, err)
	}

	for i := range page.Items {
		if err := page.Items[i].CheckIntegrity(); err != nil {
			r.lastErr = err
			r.metrics.ObserveHistoryPage("malformed")
			r.logger.Error("LoadMore: malformed record in page cursor=%q: %v", cursor, err)
			return LoadResult{HasMore: r.hasMore}, fmt.Errorf("%w: %w", ErrMalformedDelivery, err)
		}
	}

	for i := range page.Items {
		res := page.Items[i].Clone()
		r.history[res.ID] = &entry{res: res, seq: r.nextSeq(), ordinal: r.ordinalFor(res.ID)}
	}
	r.cursor = page.NextCursor
	r.hasMore = page.HasMore && page.NextCursor != ""
	r.lastErr = nil
	r.metrics.ObserveHistoryPage("ok")

	return LoadResult{Added: len(page.Items), HasMore: r.hasMore}, nil
}

// View строит представление ленты на дату today
func (r *Reconciler) View(today types.Date, filter Filter) View {
	r.mu.Lock()
	merged := r.mergedLocked()
	hasMore, loading := r.hasMore, r.loading
	r.mu.Unlock()

	v := buildView(merged, today, filter)
	v.HasMore = hasMore
	v.Loading = loading
	return v
}

// HasMore возвращает флаг наличия следующих страниц архива
func (r *Reconciler) HasMore() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasMore
}

// LastError возвращает ошибку последней загрузки страницы
func (r *Reconciler) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Lookup возвращает актуальную копию бронирования
func (r *Reconciler) Lookup(id string) (domain.Reservation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.winnerLocked(id)
	if e == nil {
		return domain.Reservation{}, false
	}
	return e.res.Clone(), true
}

// UpsertLocal записывает локальную версию бронирования во все наборы, где оно есть,
// или в активный набор, если его нет нигде
func (r *Reconciler) UpsertLocal(res domain.Reservation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res = res.Clone()
	written := false
	for _, set := range []map[string]*entry{r.active, r.history} {
		if e, ok := set[res.ID]; ok {
			set[res.ID] = &entry{res: res, seq: r.nextSeq(), ordinal: e.ordinal}
			written = true
		}
	}
	if !written {
		r.active[res.ID] = &entry{res: res, seq: r.nextSeq(), ordinal: r.ordinalFor(res.ID)}
	}
}

// ResolvePlaceholder заменяет временную запись версией из хранилища без смены позиции в списке
func (r *Reconciler) ResolvePlaceholder(placeholderID string, stored domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.active[placeholderID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlaceholderNotFound, placeholderID)
	}
	delete(r.active, placeholderID)

	// push мог уже принести настоящую запись: оставляем ее, но на позиции временной
	if existing, ok := r.active[stored.ID]; ok && existing.seq > e.seq {
		existing.ordinal = e.ordinal
		return nil
	}

	r.active[stored.ID] = &entry{res: stored.Clone(), seq: r.nextSeq(), ordinal: e.ordinal}
	return nil
}

// RemoveLocal удаляет бронирование из обоих наборов и возвращает снимок для Restore
func (r *Reconciler) RemoveLocal(id string) Removed {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := Removed{ID: id}
	if e, ok := r.active[id]; ok {
		removed.entries = append(removed.entries, removedEntry{set: setActive, entry: *e})
		delete(r.active, id)
	}
	if e, ok := r.history[id]; ok {
		removed.entries = append(removed.entries, removedEntry{set: setHistory, entry: *e})
		delete(r.history, id)
	}
	return removed
}

// Restore возвращает локально удаленные записи, если их еще не вернул push
func (r *Reconciler) Restore(removed Removed) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, re := range removed.entries {
		set := r.active
		if re.set == setHistory {
			set = r.history
		}
		if _, ok := set[removed.ID]; ok {
			continue
		}
		restored := re.entry
		restored.seq = r.nextSeq()
		set[removed.ID] = &restored
	}
}

func (r *Reconciler) nextSeq() uint64 {
	r.seq++
	return r.seq
}

// ordinalFor возвращает позицию уже известной записи или выдает новую
func (r *Reconciler) ordinalFor(id string) uint64 {
	if e, ok := r.active[id]; ok {
		return e.ordinal
	}
	if e, ok := r.history[id]; ok {
		return e.ordinal
	}
	r.ordinal++
	return r.ordinal
}

func (r *Reconciler) winnerLocked(id string) *entry {
	a, inActive := r.active[id]
	h, inHistory := r.history[id]
	switch {
	case inActive && inHistory:
		if h.seq > a.seq {
			return h
		}
		return a
	case inActive:
		return a
	case inHistory:
		return h
	}
	return nil
}

// mergedLocked объединяет наборы по id, оставляя последнюю записанную копию
func (r *Reconciler) mergedLocked() []entry {
	merged := make([]entry, 0, len(r.active)+len(r.history))
	for id, a := range r.active {
		if h, ok := r.history[id]; ok && h.seq > a.seq {
			continue
		}
		merged = append(merged, entry{res: a.res.Clone(), seq: a.seq, ordinal: a.ordinal})
	}
	for id, h := range r.history {
		if a, ok := r.active[id]; ok && a.seq >= h.seq {
			continue
		}
		merged = append(merged, entry{res: h.res.Clone(), seq: h.seq, ordinal: h.ordinal})
	}
	return merged
}
