package mutate_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/properties"
	"github.com/m04kA/rental-guide-service/internal/service/reservations"
)

// UseCase координатор изменений бронирований.
// Каждое изменение сначала применяется к ленте сессии, затем сверяется с результатом записи.
type UseCase struct {
	sink     WriteSink
	settings PropertySettings
	peers    Peers
	metrics  Metrics
	logger   Logger
	newID    func() string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sink WriteSink, settings PropertySettings, peers Peers, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		sink:     sink,
		settings: settings,
		peers:    peers,
		metrics:  metrics,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// Create добавляет бронирование под временным id, который после записи заменяется настоящим
// на той же позиции. При неудачной записи временная запись удаляется.
// Ошибка возвращается, только если ничего не было применено (валидация, объект не найден).
func (uc *UseCase) Create(ctx context.Context, f Feed, draft domain.ReservationDraft) (Outcome, error) {
	placeholderID := domain.PlaceholderPrefix + uc.newID()
	res := draft.ToReservation(placeholderID)

	if err := uc.validate(ctx, &res); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		uc.metrics.ObserveMutation("create", "rejected")
		return Outcome{}, err
	}

	f.UpsertLocal(res)

	toStore := res.Clone()
	toStore.ID = ""
	stored, err := uc.sink.Create(ctx, toStore)
	if err != nil {
		f.RemoveLocal(placeholderID)
		reason := reasonFor(err)
		uc.logger.Warn("CreateReservation: rolled back %s (%s): %v", placeholderID, reason, err)
		uc.metrics.ObserveMutation("create", string(OutcomeRolledBack))
		return Outcome{Kind: OutcomeRolledBack, Reason: reason, Err: err}, nil
	}

	if err := f.ResolvePlaceholder(placeholderID, *stored); err != nil {
		// временная запись уже ушла из ленты, добавляем сохраненную версию
		f.UpsertLocal(*stored)
	}

	uc.logger.Info("CreateReservation: %s stored as id=%s", placeholderID, stored.ID)
	uc.metrics.ObserveMutation("create", string(OutcomeApplied))
	return Outcome{Kind: OutcomeApplied, Reservation: stored}, nil
}

// Update сливает поля в ленте сразу. При неудачной записи запись перечитывается
// из хранилища, частичного отката нет.
func (uc *UseCase) Update(ctx context.Context, f Feed, id string, patch domain.ReservationPatch) (Outcome, error) {
	if domain.IsPlaceholderID(id) {
		return Outcome{}, ErrPendingCreate
	}

	current, err := uc.current(ctx, f, id)
	if err != nil {
		return Outcome{}, err
	}

	merged := patch.Apply(current)
	if err := uc.validate(ctx, &merged); err != nil {
		uc.logger.Warn("UpdateReservation: id=%s validation failed: %v", id, err)
		uc.metrics.ObserveMutation("update", "rejected")
		return Outcome{}, err
	}

	f.UpsertLocal(merged)

	stored, err := uc.sink.Update(ctx, id, patch)
	if err != nil {
		reason := reasonFor(err)
		uc.logger.Warn("UpdateReservation: id=%s failed (%s): %v", id, reason, err)
		uc.refresh(ctx, f, id)
		uc.metrics.ObserveMutation("update", string(OutcomeNeedsRefresh))
		return Outcome{Kind: OutcomeNeedsRefresh, Reason: reason, Err: err}, nil
	}

	f.UpsertLocal(*stored)
	uc.logger.Info("UpdateReservation: id=%s applied", id)
	uc.metrics.ObserveMutation("update", string(OutcomeApplied))
	return Outcome{Kind: OutcomeApplied, Reservation: stored}, nil
}

// Remove удаляет бронирование из ленты сразу. confirmation должен совпадать с id.
// Если хранилище не подтвердило удаление, запись вернет перечитывание или следующая поставка.
func (uc *UseCase) Remove(ctx context.Context, f Feed, id, confirmation string) (Outcome, error) {
	if confirmation != id {
		uc.logger.Warn("RemoveReservation: confirmation %q does not match id=%s", confirmation, id)
		uc.metrics.ObserveMutation("remove", "rejected")
		return Outcome{}, ErrConfirmationMismatch
	}
	if domain.IsPlaceholderID(id) {
		return Outcome{}, ErrPendingCreate
	}

	removed := f.RemoveLocal(id)

	err := uc.sink.Remove(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, reservations.ErrReservationNotFound):
		// уже удалено
		uc.logger.Info("RemoveReservation: id=%s was already gone", id)
	default:
		reason := reasonFor(err)
		uc.logger.Warn("RemoveReservation: id=%s failed (%s): %v", id, reason, err)
		if fresh, getErr := uc.sink.Get(ctx, id); getErr == nil {
			f.Restore(removed)
			f.UpsertLocal(*fresh)
		}
		uc.metrics.ObserveMutation("remove", string(OutcomeNeedsRefresh))
		return Outcome{Kind: OutcomeNeedsRefresh, Reason: reason, Err: err}, nil
	}

	// архивные копии в чужих лентах push не затрагивает
	uc.peers.Forget(id)

	uc.logger.Info("RemoveReservation: id=%s removed", id)
	uc.metrics.ObserveMutation("remove", string(OutcomeApplied))
	return Outcome{Kind: OutcomeApplied}, nil
}

// validate проверяет запись с учетом обязательных полей ее объекта
func (uc *UseCase) validate(ctx context.Context, res *domain.Reservation) error {
	if err := validateReservation(res, nil); err != nil {
		return err
	}

	required, err := uc.settings.RequiredFields(ctx, res.PropertyID)
	if err != nil {
		if errors.Is(err, properties.ErrPropertyNotFound) {
			return fmt.Errorf("%w: %s", ErrPropertyNotFound, res.PropertyID)
		}
		uc.logger.Error("validate: failed to load settings of property=%s: %v", res.PropertyID, err)
		return fmt.Errorf("%w: failed to load property settings: %v", ErrInternal, err)
	}

	return validateReservation(res, required)
}

// current возвращает версию из ленты или из хранилища
func (uc *UseCase) current(ctx context.Context, f Feed, id string) (domain.Reservation, error) {
	if res, ok := f.Lookup(id); ok {
		return res, nil
	}

	res, err := uc.sink.Get(ctx, id)
	if err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			return domain.Reservation{}, ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}
	return *res, nil
}

// refresh перечитывает запись после неудачной записи
func (uc *UseCase) refresh(ctx context.Context, f Feed, id string) {
	fresh, err := uc.sink.Get(ctx, id)
	switch {
	case err == nil:
		f.UpsertLocal(*fresh)
	case errors.Is(err, reservations.ErrReservationNotFound):
		f.RemoveLocal(id)
	default:
		uc.logger.Warn("refresh: id=%s stays stale until next delivery: %v", id, err)
	}
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, reservations.ErrRangeOccupied):
		return ReasonRangeOccupied
	case errors.Is(err, reservations.ErrReservationNotFound):
		return ReasonNotFound
	}
	return ReasonStoreUnavailable
}
