package feed

import "github.com/m04kA/rental-guide-service/internal/domain"

// Filter фильтр ленты, применяемый после объединения наборов
type Filter struct {
	Query      string // Подстрока имени гостя или внутренней заметки, без учета регистра и диакритики
	PropertyID string // Пустая строка - все объекты
}

// MonthGroup непрерывная группа архивных бронирований с одинаковым месяцем выезда
type MonthGroup struct {
	Key          string // "2024-03"
	Label        string // "Março de 2024"
	Reservations []domain.Reservation
}

// View разбитое на группы представление ленты
type View struct {
	LeavingToday []domain.Reservation
	Hosted       []domain.Reservation
	Upcoming     []domain.Reservation
	History      []MonthGroup
	HasMore      bool
	Loading      bool
}

// Total число бронирований во всех группах
func (v View) Total() int {
	n := len(v.LeavingToday) + len(v.Hosted) + len(v.Upcoming)
	for _, g := range v.History {
		n += len(g.Reservations)
	}
	return n
}

// LoadResult результат запроса следующей страницы
type LoadResult struct {
	Skipped bool // Загрузка уже идет или архив исчерпан
	Added   int
	HasMore bool
}

// Removed снимок записей, удаленных локально, для восстановления
type Removed struct {
	ID      string
	entries []removedEntry
}

// Found возвращает true, если запись была в ленте
func (r Removed) Found() bool {
	return len(r.entries) > 0
}

type removedEntry struct {
	set   setKind
	entry entry
}
