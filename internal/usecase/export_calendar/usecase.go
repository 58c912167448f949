package export_calendar

import (
	"context"
	"errors"
	"fmt"

	ical "github.com/arran4/golang-ical"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/properties"
)

const (
	summaryReserved = "Reservado"
	summaryBlocked  = "Bloqueado"
	uidDomain       = "rental-guide"
)

// UseCase use case выгрузки занятости объекта в iCalendar
type UseCase struct {
	properties   PropertyProvider
	reservations ReservationSource
	blocks       BlockSource
	productID    string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	properties PropertyProvider,
	reservations ReservationSource,
	blocks BlockSource,
	productID string,
	logger Logger,
) *UseCase {
	return &UseCase{
		properties:   properties,
		reservations: reservations,
		blocks:       blocks,
		productID:    productID,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute собирает календарь из актуальных бронирований и блокировок объекта.
// Имена гостей и заметки в выгрузку не попадают.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Объект
	property, err := uc.properties.Get(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, properties.ErrPropertyNotFound) {
			uc.logger.Warn("ExportCalendar: property=%s not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("ExportCalendar: failed to get property=%s: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	// 2. Бронирования и блокировки
	reservations, err := uc.reservations.ListActive(ctx, &property.ID)
	if err != nil {
		uc.logger.Error("ExportCalendar: failed to list reservations of property=%s: %v", property.ID, err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}
	blocks, err := uc.blocks.List(ctx, &property.ID)
	if err != nil {
		uc.logger.Error("ExportCalendar: failed to list blocks of property=%s: %v", property.ID, err)
		return nil, fmt.Errorf("%w: failed to list blocks: %v", ErrInternal, err)
	}

	// 3. Календарь
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(uc.productID)
	cal.SetXWRCalName(property.Name)

	stamp := uc.timeProvider.Now().UTC()
	events := 0

	for i := range reservations {
		r := &reservations[i]
		if r.IsCancelled() {
			continue
		}

		event := cal.AddEvent(eventUID("reservation", r.ID))
		event.SetDtStampTime(stamp)
		// Дата выезда не занята, поэтому она совпадает с DTEND
		event.SetAllDayStartAt(r.CheckIn.Time())
		event.SetAllDayEndAt(r.Checkout.Time())
		event.SetSummary(summaryReserved)
		event.SetStatus(eventStatus(r.Status))
		events++
	}

	for i := range blocks {
		b := &blocks[i]

		event := cal.AddEvent(eventUID("block", b.ID))
		event.SetDtStampTime(stamp)
		// Последний день блокировки занят, DTEND исключающий
		event.SetAllDayStartAt(b.StartDate.Time())
		event.SetAllDayEndAt(b.EndDate.AddDays(1).Time())
		event.SetSummary(summaryBlocked)
		event.SetStatus(ical.ObjectStatusConfirmed)
		events++
	}

	uc.logger.Info("ExportCalendar: property=%s exported %d events", property.ID, events)

	return &Response{
		Filename: property.ID + ".ics",
		Body:     cal.Serialize(),
		Events:   events,
	}, nil
}

func eventUID(kind, id string) string {
	return fmt.Sprintf("%s-%s@%s", kind, id, uidDomain)
}

func eventStatus(status domain.ReservationStatus) ical.ObjectStatus {
	if status == domain.StatusPending {
		return ical.ObjectStatusTentative
	}
	return ical.ObjectStatusConfirmed
}
