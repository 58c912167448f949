package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/rental-guide-service/internal/domain"
	reservationRepo "github.com/m04kA/rental-guide-service/internal/infra/storage/reservation"
	"github.com/m04kA/rental-guide-service/internal/service/feed"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// Service хранилище бронирований: запись с проверкой пересечений и чтение наборов для ленты
type Service struct {
	repo         ReservationRepository
	blockRepo    BlockRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// location задает часовой пояс, в котором определяется "сегодня".
func NewService(
	repo ReservationRepository,
	blockRepo BlockRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		blockRepo:    blockRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		location:     location,
		logger:       logger,
	}
}

// Today текущая дата в часовом поясе сервиса
func (s *Service) Today() types.Date {
	return types.Today(s.timeProvider.Now(), s.location)
}

// Create сохраняет бронирование и возвращает назначенный хранилищем id
func (s *Service) Create(ctx context.Context, res domain.Reservation) (*domain.Reservation, error) {
	res.ID = uuid.NewString()
	if err := res.CheckIntegrity(); err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrInternal, err)
	}

	var created *domain.Reservation
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.ensureFree(txCtx, &res, ""); err != nil {
			return err
		}

		var err error
		created, err = s.repo.Create(txCtx, &res)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Create: property=%s stay=%s failed: %v", res.PropertyID, res.Stay(), err)
		return nil, err
	}

	s.logger.Info("Create: reservation id=%s stored for property=%s stay=%s", created.ID, created.PropertyID, created.Stay())
	return created, nil
}

// Update применяет частичное обновление. Даты и объект перепроверяются на пересечения.
func (s *Service) Update(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error) {
	var updated *domain.Reservation
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("Update", id, err)
		}

		merged := patch.Apply(*current)
		if err := merged.CheckIntegrity(); err != nil {
			return fmt.Errorf("%w: Update - %v", ErrInternal, err)
		}
		if patch.TouchesOccupancy() {
			if err := s.ensureFree(txCtx, &merged, id); err != nil {
				return err
			}
		}

		updated, err = s.repo.Update(txCtx, id, patch)
		if err != nil {
			return s.mapRepoError("Update", id, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Update: reservation id=%s failed: %v", id, err)
		return nil, err
	}

	s.logger.Info("Update: reservation id=%s updated", id)
	return updated, nil
}

// Remove удаляет бронирование
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		err = s.mapRepoError("Remove", id, err)
		s.logger.Warn("Remove: reservation id=%s failed: %v", id, err)
		return err
	}

	s.logger.Info("Remove: reservation id=%s removed", id)
	return nil
}

// Get возвращает сохраненную версию бронирования
func (s *Service) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Get", id, err)
	}
	return res, nil
}

// ListActive возвращает полный активный набор: выезд сегодня или позже.
// propertyID = nil - по всем объектам.
func (s *Service) ListActive(ctx context.Context, propertyID *string) ([]domain.Reservation, error) {
	list, err := s.repo.ListActive(ctx, s.Today(), propertyID)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// FetchHistoryPage возвращает страницу архива, новые выезды первыми
func (s *Service) FetchHistoryPage(ctx context.Context, cursor string, limit int) (*feed.Page, error) {
	if limit <= 0 || limit > domain.MaxHistoryPageSize {
		limit = domain.DefaultHistoryPageSize
	}

	page, err := s.repo.ListHistoryPage(ctx, s.Today(), cursor, limit)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrInvalidCursor) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
		}
		s.logger.Error("FetchHistoryPage: repository error: %v", err)
		return nil, fmt.Errorf("%w: FetchHistoryPage - repository error: %v", ErrInternal, err)
	}

	return &feed.Page{Items: page.Items, NextCursor: page.NextCursor, HasMore: page.HasMore}, nil
}

// ensureFree проверяет в хранилище, что проживание не задевает чужие бронирования и блокировки.
// Отмененное бронирование даты не занимает.
func (s *Service) ensureFree(ctx context.Context, res *domain.Reservation, excludeID string) error {
	if res.IsCancelled() {
		return nil
	}

	stay := res.Stay()
	count, err := s.repo.CountOverlapping(ctx, res.PropertyID, stay, excludeID)
	if err != nil {
		return fmt.Errorf("%w: ensureFree - count reservations: %v", ErrInternal, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d reservation(s) overlap %s", ErrRangeOccupied, count, stay)
	}

	count, err = s.blockRepo.CountOverlapping(ctx, res.PropertyID, stay)
	if err != nil {
		return fmt.Errorf("%w: ensureFree - count blocks: %v", ErrInternal, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d block(s) overlap %s", ErrRangeOccupied, count, stay)
	}

	return nil
}

func (s *Service) mapRepoError(op, id string, err error) error {
	if errors.Is(err, reservationRepo.ErrReservationNotFound) {
		return ErrReservationNotFound
	}
	s.logger.Error("%s: repository error for reservation id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
