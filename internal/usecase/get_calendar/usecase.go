package get_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/rental-guide-service/internal/service/feed"
	"github.com/m04kA/rental-guide-service/internal/service/properties"
	"github.com/m04kA/rental-guide-service/internal/service/selection"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// UseCase use case отображения месяца календаря гостю
type UseCase struct {
	properties   PropertyProvider
	occupancy    OccupancyProvider
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location - часовой пояс для объектов без собственного.
func NewUseCase(
	properties PropertyProvider,
	occupancy OccupancyProvider,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		properties:   properties,
		occupancy:    occupancy,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case получения месяца календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Состояние выбора из запроса
	state, err := stateFromRequest(req)
	if err != nil {
		uc.logger.Warn("GetCalendar: property=%s: %v", req.PropertyID, err)
		return nil, err
	}

	// 2. Объект и его "сегодня"
	property, err := uc.properties.Get(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, properties.ErrPropertyNotFound) {
			uc.logger.Warn("GetCalendar: property=%s not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("GetCalendar: failed to get property=%s: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}
	today := types.Today(uc.timeProvider.Now(), property.Location(uc.location))

	// 3. Месяц
	year, month, err := parseMonth(req.Month, today)
	if err != nil {
		uc.logger.Warn("GetCalendar: property=%s: %v", req.PropertyID, err)
		return nil, err
	}

	// 4. Дни месяца по снимку занятости
	snapshot := uc.occupancy.Snapshot(property.ID)
	if snapshot.Uncertain() {
		uc.logger.Warn("GetCalendar: property=%s occupancy is uncertain, every date is shown as occupied", property.ID)
	}

	first := types.DateOf(year, month, 1)
	return &Response{
		PropertyID: property.ID,
		Month:      first.YearMonth(),
		Label:      feed.MonthLabel(first),
		Today:      today,
		Selection:  state,
		Days:       selection.MonthView(year, month, snapshot, state, today),
		Uncertain:  snapshot.Uncertain(),
	}, nil
}
