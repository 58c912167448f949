package mutate_reservation

import "github.com/m04kA/rental-guide-service/internal/domain"

// OutcomeKind исход изменения после сверки с хранилищем
type OutcomeKind string

const (
	// OutcomeApplied хранилище подтвердило изменение, лента содержит сохраненную версию
	OutcomeApplied OutcomeKind = "applied"
	// OutcomeRolledBack запись не удалась, локальное изменение отменено
	OutcomeRolledBack OutcomeKind = "rolled_back"
	// OutcomeNeedsRefresh запись не удалась, лента может расходиться с хранилищем до следующей поставки
	OutcomeNeedsRefresh OutcomeKind = "needs_refresh"
)

// Причины неудачной записи
const (
	ReasonRangeOccupied    = "range_occupied"
	ReasonNotFound         = "not_found"
	ReasonStoreUnavailable = "store_unavailable"
)

// Outcome результат Create/Update/Remove
type Outcome struct {
	Kind        OutcomeKind
	Reservation *domain.Reservation // Сохраненная версия, если известна
	Reason      string              // Для RolledBack и NeedsRefresh
	Err         error               // Ошибка хранилища
}

// Applied возвращает true, если изменение подтверждено
func (o Outcome) Applied() bool {
	return o.Kind == OutcomeApplied
}
