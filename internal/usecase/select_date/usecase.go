package select_date

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/rental-guide-service/internal/service/properties"
	"github.com/m04kA/rental-guide-service/internal/service/selection"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// UseCase use case выбора даты в календаре гостя
type UseCase struct {
	properties   PropertyProvider
	occupancy    OccupancyProvider
	metrics      Metrics
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	properties PropertyProvider,
	occupancy OccupancyProvider,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		properties:   properties,
		occupancy:    occupancy,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute вычисляет переход состояния выбора по клику на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация и текущее состояние
	state, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("SelectDate: validation failed: %v", err)
		return nil, err
	}

	// 2. Объект и его "сегодня"
	property, err := uc.properties.Get(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, properties.ErrPropertyNotFound) {
			uc.logger.Warn("SelectDate: property=%s not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("SelectDate: failed to get property=%s: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}
	today := types.Today(uc.timeProvider.Now(), property.Location(uc.location))

	// 3. Переход машины состояний
	snapshot := uc.occupancy.Snapshot(property.ID)
	outcome := selection.SelectDate(state, req.Date, snapshot, today)

	if outcome.Conflict {
		uc.metrics.ObserveSelectionConflict()
		uc.logger.Info("SelectDate: property=%s range %s..%s has occupied dates, restarted from %s",
			property.ID, state.Start, req.Date, req.Date)
	}

	return &Response{
		State:     outcome.State,
		Ignored:   outcome.Ignored,
		Conflict:  outcome.Conflict,
		Warning:   outcome.Warning,
		Uncertain: snapshot.Uncertain(),
	}, nil
}
