package blocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/rental-guide-service/internal/domain"
	blockedRepo "github.com/m04kA/rental-guide-service/internal/infra/storage/blocked"
	"github.com/m04kA/rental-guide-service/internal/service/properties"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// CreateRequest запрос на блокировку дат
type CreateRequest struct {
	PropertyID string
	StartDate  types.Date
	EndDate    types.Date // Включительно
	Reason     *string
}

// Service сервис административных блокировок дат
type Service struct {
	repo         BlockRepository
	properties   PropertyProvider
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	repo BlockRepository,
	properties PropertyProvider,
	timeProvider TimeProvider,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		properties:   properties,
		timeProvider: timeProvider,
		location:     location,
		logger:       logger,
	}
}

// Create блокирует даты объекта. Пересечение с бронированиями не проверяется:
// блокировка административная и просто делает даты занятыми.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.BlockedDateRange, error) {
	s.logger.Info("Create: blocking %s..%s for property=%s", req.StartDate, req.EndDate, req.PropertyID)

	if err := validateCreate(&req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.properties.Get(ctx, req.PropertyID); err != nil {
		if errors.Is(err, properties.ErrPropertyNotFound) {
			s.logger.Warn("Create: property id=%s not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("%w: Create - get property: %v", ErrInternal, err)
	}

	block, err := s.repo.Create(ctx, &domain.BlockedDateRange{
		ID:         uuid.NewString(),
		PropertyID: req.PropertyID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: block id=%s stored", block.ID)
	return block, nil
}

// List возвращает блокировки, которые еще не закончились.
// propertyID = nil - по всем объектам.
func (s *Service) List(ctx context.Context, propertyID *string) ([]domain.BlockedDateRange, error) {
	today := types.Today(s.timeProvider.Now(), s.location)

	list, err := s.repo.List(ctx, today, propertyID)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// Delete снимает блокировку
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: block id=%s not found", id)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: block id=%s removed", id)
	return nil
}

func validateCreate(req *CreateRequest) error {
	req.PropertyID = strings.TrimSpace(req.PropertyID)
	if req.PropertyID == "" {
		return domain.NewValidationError(domain.CodePropertyRequired, "propertyId")
	}
	if err := (domain.Interval{Start: req.StartDate, End: req.EndDate}).Validate(); err != nil {
		return domain.NewValidationError(domain.CodeInvalidInterval, "endDate")
	}
	if req.Reason != nil {
		reason := strings.TrimSpace(*req.Reason)
		if len(reason) > domain.MaxBlockReasonLength {
			return domain.NewValidationError(domain.CodeFieldTooLong, "reason")
		}
		if reason == "" {
			req.Reason = nil
		} else {
			req.Reason = &reason
		}
	}
	return nil
}
