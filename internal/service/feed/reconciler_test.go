package feed_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/feed"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

var today = types.MustParseDate("2024-03-15")

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type nopMetrics struct{}

func (nopMetrics) ObserveHistoryPage(string) {}
func (nopMetrics) SetActiveSessions(int)     {}

// archive отдает срез страницами, курсор - индекс следующего элемента
type archive struct {
	mu    sync.Mutex
	items []domain.Reservation
	err   error
	calls int
}

func (a *archive) FetchHistoryPage(_ context.Context, cursor string, limit int) (*feed.Page, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	if a.err != nil {
		return nil, a.err
	}

	start := 0
	if cursor != "" {
		start, _ = strconv.Atoi(cursor)
	}
	end := min(start+limit, len(a.items))

	page := &feed.Page{Items: append([]domain.Reservation(nil), a.items[start:end]...)}
	if end < len(a.items) {
		page.NextCursor = strconv.Itoa(end)
		page.HasMore = true
	}
	return page, nil
}

func d(s string) types.Date {
	return types.MustParseDate(s)
}

func res(id, name, checkIn, checkout string) domain.Reservation {
	return domain.Reservation{
		ID:         id,
		PropertyID: "casa-azul",
		GuestName:  name,
		Status:     domain.StatusActive,
		CheckIn:    d(checkIn),
		Checkout:   d(checkout),
	}
}

func ids(list []domain.Reservation) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.ID
	}
	return out
}

func newReconciler(src feed.HistorySource, pageSize int) *feed.Reconciler {
	return feed.NewReconciler(src, pageSize, nopMetrics{}, nopLogger{})
}

func TestReconciler_ActiveAndHistoryMerge(t *testing.T) {
	src := &archive{items: []domain.Reservation{res("R2", "Bruno", "2024-03-10", "2024-03-14")}}
	rec := newReconciler(src, 10)

	require.NoError(t, rec.ReplaceActive([]domain.Reservation{res("R1", "Ana", "2024-03-12", "2024-03-15")}))
	_, err := rec.LoadMore(context.Background())
	require.NoError(t, err)

	v := rec.View(today, feed.Filter{})

	assert.Equal(t, []string{"R1"}, ids(v.LeavingToday))
	require.Len(t, v.History, 1)
	assert.Equal(t, []string{"R2"}, ids(v.History[0].Reservations))
	assert.Empty(t, v.Hosted)
	assert.Empty(t, v.Upcoming)
	assert.False(t, v.HasMore)
}

func TestReconciler_DedupKeepsMostRecentlyWritten(t *testing.T) {
	archived := res("R1", "Ana (arquivo)", "2024-03-10", "2024-03-14")
	src := &archive{items: []domain.Reservation{archived}}
	rec := newReconciler(src, 10)

	_, err := rec.LoadMore(context.Background())
	require.NoError(t, err)

	fresh := res("R1", "Ana", "2024-03-10", "2024-03-16")
	require.NoError(t, rec.ReplaceActive([]domain.Reservation{fresh}))

	v := rec.View(today, feed.Filter{})
	assert.Equal(t, 1, v.Total())
	require.Len(t, v.Hosted, 1)
	assert.Equal(t, "Ana", v.Hosted[0].GuestName)

	got, ok := rec.Lookup("R1")
	require.True(t, ok)
	assert.Equal(t, d("2024-03-16"), got.Checkout)
}

func TestReconciler_PartitionCompleteAndSorted(t *testing.T) {
	active := []domain.Reservation{
		res("L2", "Zé", "2024-03-10", "2024-03-15"),
		res("L1", "Ágata", "2024-03-11", "2024-03-15"),
		res("H2", "Carla", "2024-03-14", "2024-03-20"),
		res("H1", "Davi", "2024-03-15", "2024-03-17"),
		res("U2", "Eva", "2024-04-01", "2024-04-03"),
		res("U1", "Fábio", "2024-03-16", "2024-03-18"),
	}
	history := []domain.Reservation{
		res("P1", "Gil", "2024-03-10", "2024-03-14"),
		res("P2", "Hugo", "2024-03-01", "2024-03-02"),
		res("P3", "Iara", "2024-02-20", "2024-02-25"),
		res("P4", "Jó", "2024-01-28", "2024-02-01"),
		res("P5", "Kai", "2024-01-02", "2024-01-05"),
	}
	rec := newReconciler(&archive{items: history}, 10)
	require.NoError(t, rec.ReplaceActive(active))
	_, err := rec.LoadMore(context.Background())
	require.NoError(t, err)

	v := rec.View(today, feed.Filter{})

	assert.Equal(t, []string{"L1", "L2"}, ids(v.LeavingToday), "leaving today by guest name")
	assert.Equal(t, []string{"H1", "H2"}, ids(v.Hosted), "hosted by checkout asc")
	assert.Equal(t, []string{"U1", "U2"}, ids(v.Upcoming), "upcoming by check-in asc")

	require.Len(t, v.History, 3)
	assert.Equal(t, "2024-03", v.History[0].Key)
	assert.Equal(t, "Março de 2024", v.History[0].Label)
	assert.Equal(t, []string{"P1", "P2"}, ids(v.History[0].Reservations))
	assert.Equal(t, "2024-02", v.History[1].Key)
	assert.Equal(t, []string{"P3", "P4"}, ids(v.History[1].Reservations))
	assert.Equal(t, []string{"P5"}, ids(v.History[2].Reservations))

	// каждая запись ровно в одной группе
	seen := make(map[string]int)
	for _, list := range [][]domain.Reservation{v.LeavingToday, v.Hosted, v.Upcoming} {
		for _, r := range list {
			seen[r.ID]++
		}
	}
	for _, g := range v.History {
		for _, r := range g.Reservations {
			seen[r.ID]++
		}
	}
	assert.Len(t, seen, len(active)+len(history))
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}

func TestReconciler_Filter(t *testing.T) {
	joao := res("R1", "João Pereira", "2024-03-14", "2024-03-18")
	noted := res("R2", "Maria", "2024-03-14", "2024-03-19")
	noted.InternalNote = "Chegada às 22h, pediu BERÇO"
	other := res("R3", "João Silva", "2024-03-14", "2024-03-20")
	other.PropertyID = "casa-verde"

	rec := newReconciler(&archive{}, 10)
	require.NoError(t, rec.ReplaceActive([]domain.Reservation{joao, noted, other}))

	tests := []struct {
		name   string
		filter feed.Filter
		want   []string
	}{
		{name: "no filter", filter: feed.Filter{}, want: []string{"R1", "R2", "R3"}},
		{name: "accent and case insensitive", filter: feed.Filter{Query: "JOAO"}, want: []string{"R1", "R3"}},
		{name: "internal note", filter: feed.Filter{Query: "berco"}, want: []string{"R2"}},
		{name: "property", filter: feed.Filter{PropertyID: "casa-verde"}, want: []string{"R3"}},
		{name: "query and property", filter: feed.Filter{Query: "joão", PropertyID: "casa-azul"}, want: []string{"R1"}},
		{name: "no match", filter: feed.Filter{Query: "pedro"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := rec.View(today, tt.filter)
			assert.Equal(t, tt.want, ids(v.Hosted))
		})
	}
}

func TestReconciler_PaginationMonotonic(t *testing.T) {
	var items []domain.Reservation
	checkout := d("2024-03-10")
	for i := 0; i < 7; i++ {
		items = append(items, res("P"+strconv.Itoa(i), "Guest", checkout.AddDays(-3).String(), checkout.String()))
		checkout = checkout.AddDays(-4)
	}
	src := &archive{items: items}
	rec := newReconciler(src, 3)

	size := func() int { return rec.View(today, feed.Filter{}).Total() }

	prev := 0
	for i := 0; i < 3; i++ {
		result, err := rec.LoadMore(context.Background())
		require.NoError(t, err)
		assert.False(t, result.Skipped)
		assert.GreaterOrEqual(t, size(), prev)
		prev = size()
	}

	assert.Equal(t, 7, prev)
	assert.False(t, rec.HasMore())

	result, err := rec.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, 3, src.calls, "exhausted archive is not queried again")
}

func TestReconciler_LoadMoreFailureKeepsState(t *testing.T) {
	src := &archive{items: []domain.Reservation{
		res("P1", "Gil", "2024-03-01", "2024-03-05"),
		res("P2", "Hugo", "2024-02-01", "2024-02-05"),
	}}
	rec := newReconciler(src, 1)

	_, err := rec.LoadMore(context.Background())
	require.NoError(t, err)

	src.err = errors.New("connection reset")
	_, err = rec.LoadMore(context.Background())
	require.ErrorIs(t, err, feed.ErrHistoryUnavailable)

	v := rec.View(today, feed.Filter{})
	assert.Equal(t, 1, v.Total(), "loaded history is kept")
	assert.True(t, v.HasMore, "hasMore is unchanged so retry is possible")
	assert.Error(t, rec.LastError())

	src.err = nil
	_, err = rec.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, rec.View(today, feed.Filter{}).Total())
	assert.NoError(t, rec.LastError())
}

func TestReconciler_MalformedPageRejected(t *testing.T) {
	broken := res("P1", "Gil", "2024-03-05", "2024-03-01")
	rec := newReconciler(&archive{items: []domain.Reservation{broken}}, 10)

	_, err := rec.LoadMore(context.Background())
	require.ErrorIs(t, err, feed.ErrMalformedDelivery)
	assert.True(t, rec.HasMore())
	assert.Zero(t, rec.View(today, feed.Filter{}).Total())
}

// blockingArchive держит первый запрос до закрытия release
type blockingArchive struct {
	started chan struct{}
	release chan struct{}
	calls   int
	mu      sync.Mutex
}

func (b *blockingArchive) FetchHistoryPage(context.Context, string, int) (*feed.Page, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	close(b.started)
	<-b.release
	return &feed.Page{}, nil
}

func TestReconciler_LoadMoreInFlightGuard(t *testing.T) {
	src := &blockingArchive{started: make(chan struct{}), release: make(chan struct{})}
	rec := newReconciler(src, 10)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = rec.LoadMore(context.Background())
	}()

	<-src.started
	assert.True(t, rec.View(today, feed.Filter{}).Loading)

	result, err := rec.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Skipped)

	close(src.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("first LoadMore did not finish")
	}
	assert.Equal(t, 1, src.calls)
}

func TestReconciler_PlaceholderSurvivesReplaceAndKeepsPosition(t *testing.T) {
	rec := newReconciler(&archive{}, 10)
	require.NoError(t, rec.ReplaceActive([]domain.Reservation{res("R1", "Ana", "2024-03-20", "2024-03-22")}))

	placeholder := res(domain.PlaceholderPrefix+"1", "Bia", "2024-03-20", "2024-03-23")
	rec.UpsertLocal(placeholder)
	require.NoError(t, rec.ReplaceActive([]domain.Reservation{
		res("R0", "Caio", "2024-03-20", "2024-03-21"),
		res("R1", "Ana", "2024-03-20", "2024-03-22"),
	}))

	before := ids(rec.View(today, feed.Filter{}).Upcoming)
	require.Contains(t, before, placeholder.ID)

	stored := placeholder
	stored.ID = "R9"
	require.NoError(t, rec.ResolvePlaceholder(placeholder.ID, stored))

	after := ids(rec.View(today, feed.Filter{}).Upcoming)
	for i := range before {
		if before[i] == placeholder.ID {
			before[i] = "R9"
		}
	}
	assert.Equal(t, before, after)

	require.ErrorIs(t, rec.ResolvePlaceholder(placeholder.ID, stored), feed.ErrPlaceholderNotFound)
}

func TestReconciler_RemoveThenPushRestores(t *testing.T) {
	r1 := res("R1", "Ana", "2024-03-12", "2024-03-15")
	rec := newReconciler(&archive{}, 10)
	require.NoError(t, rec.ReplaceActive([]domain.Reservation{r1}))

	removed := rec.RemoveLocal("R1")
	assert.True(t, removed.Found())
	assert.Empty(t, rec.View(today, feed.Filter{}).LeavingToday)

	// запись не удалилась в хранилище: следующий push возвращает ее
	require.NoError(t, rec.ReplaceActive([]domain.Reservation{r1}))
	assert.Equal(t, []string{"R1"}, ids(rec.View(today, feed.Filter{}).LeavingToday))
}

func TestReconciler_RestoreRemoved(t *testing.T) {
	archived := res("P1", "Gil", "2024-03-01", "2024-03-05")
	rec := newReconciler(&archive{items: []domain.Reservation{archived}}, 10)
	_, err := rec.LoadMore(context.Background())
	require.NoError(t, err)

	removed := rec.RemoveLocal("P1")
	assert.Zero(t, rec.View(today, feed.Filter{}).Total())

	rec.Restore(removed)
	got, ok := rec.Lookup("P1")
	require.True(t, ok)
	assert.Equal(t, "Gil", got.GuestName)

	assert.False(t, rec.RemoveLocal("missing").Found())
}

func TestReconciler_UpsertLocalUpdatesHistoryCopy(t *testing.T) {
	archived := res("P1", "Gil", "2024-03-01", "2024-03-05")
	rec := newReconciler(&archive{items: []domain.Reservation{archived}}, 10)
	_, err := rec.LoadMore(context.Background())
	require.NoError(t, err)

	edited := archived
	edited.InternalNote = "deixou a chave na portaria"
	rec.UpsertLocal(edited)

	// полная замена активного набора не откатывает правку архивной записи
	require.NoError(t, rec.ReplaceActive(nil))

	got, ok := rec.Lookup("P1")
	require.True(t, ok)
	assert.Equal(t, "deixou a chave na portaria", got.InternalNote)
}

func TestReconciler_MalformedPushKeepsPreviousSet(t *testing.T) {
	rec := newReconciler(&archive{}, 10)
	require.NoError(t, rec.ReplaceActive([]domain.Reservation{res("R1", "Ana", "2024-03-12", "2024-03-15")}))

	bad := res("R2", "Bia", "2024-03-12", "2024-03-15")
	bad.Status = "unknown"
	require.ErrorIs(t, rec.ReplaceActive([]domain.Reservation{bad}), feed.ErrMalformedDelivery)

	assert.Equal(t, []string{"R1"}, ids(rec.View(today, feed.Filter{}).LeavingToday))
}
