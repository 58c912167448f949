package feed

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthLabel подпись группы архива, например "Março de 2024"
func MonthLabel(d types.Date) string {
	return fmt.Sprintf("%s de %d", monthNames[d.Month()-1], d.Year())
}

// buildView фильтрует, разбивает на группы, сортирует и группирует архив по месяцам
func buildView(merged []entry, today types.Date, filter Filter) View {
	query := foldText(strings.TrimSpace(filter.Query))

	var leaving, hosted, upcoming, history []entry
	for _, e := range merged {
		if !matches(&e.res, filter.PropertyID, query) {
			continue
		}
		switch {
		case e.res.Checkout.Before(today):
			history = append(history, e)
		case e.res.Checkout.Equal(today):
			leaving = append(leaving, e)
		case e.res.CheckIn.After(today):
			upcoming = append(upcoming, e)
		default:
			hosted = append(hosted, e)
		}
	}

	sortEntries(leaving, func(a, b *entry) int {
		return strings.Compare(foldText(a.res.GuestName), foldText(b.res.GuestName))
	})
	sortEntries(hosted, func(a, b *entry) int {
		return a.res.Checkout.Compare(b.res.Checkout)
	})
	sortEntries(upcoming, func(a, b *entry) int {
		return a.res.CheckIn.Compare(b.res.CheckIn)
	})
	sortEntries(history, func(a, b *entry) int {
		return b.res.Checkout.Compare(a.res.Checkout)
	})

	return View{
		LeavingToday: reservations(leaving),
		Hosted:       reservations(hosted),
		Upcoming:     reservations(upcoming),
		History:      groupByMonth(history),
	}
}

// sortEntries сортирует по ключу, равные ключи упорядочены по стабильной позиции
func sortEntries(list []entry, byKey func(a, b *entry) int) {
	slices.SortFunc(list, func(a, b entry) int {
		if c := byKey(&a, &b); c != 0 {
			return c
		}
		return cmp.Compare(a.ordinal, b.ordinal)
	})
}

// groupByMonth собирает непрерывные серии с одинаковым месяцем выезда, сохраняя порядок
func groupByMonth(sorted []entry) []MonthGroup {
	var groups []MonthGroup
	for _, e := range sorted {
		key := e.res.Checkout.YearMonth()
		if n := len(groups); n > 0 && groups[n-1].Key == key {
			groups[n-1].Reservations = append(groups[n-1].Reservations, e.res)
			continue
		}
		groups = append(groups, MonthGroup{
			Key:          key,
			Label:        MonthLabel(e.res.Checkout),
			Reservations: []domain.Reservation{e.res},
		})
	}
	return groups
}

func reservations(list []entry) []domain.Reservation {
	out := make([]domain.Reservation, len(list))
	for i := range list {
		out[i] = list[i].res
	}
	return out
}

func matches(r *domain.Reservation, propertyID, foldedQuery string) bool {
	if propertyID != "" && r.PropertyID != propertyID {
		return false
	}
	if foldedQuery == "" {
		return true
	}
	return strings.Contains(foldText(r.GuestName), foldedQuery) ||
		strings.Contains(foldText(r.InternalNote), foldedQuery)
}

// foldText приводит строку к виду для поиска без учета регистра и диакритики: "João" -> "joao"
func foldText(s string) string {
	if s == "" {
		return s
	}
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}
