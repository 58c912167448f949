package properties

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/m04kA/rental-guide-service/internal/domain"
	propertyRepo "github.com/m04kA/rental-guide-service/internal/infra/storage/property"
	"github.com/m04kA/rental-guide-service/internal/service/properties/models"
)

// fieldNamePattern допустимое имя дополнительного поля бронирования: lock_code, unit_number
var fieldNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// Service сервис объектов аренды и их настроек.
// Чтения по id кэшируются на cacheTTL, изменения сбрасывают запись.
type Service struct {
	repo            PropertyRepository
	cache           *ttlcache.Cache[string, domain.Property]
	defaultTimezone string
	logger          Logger
}

// NewService создает новый экземпляр сервиса объектов
func NewService(repo PropertyRepository, cacheTTL time.Duration, defaultTimezone string, logger Logger) *Service {
	cache := ttlcache.New[string, domain.Property](
		ttlcache.WithTTL[string, domain.Property](cacheTTL),
		ttlcache.WithDisableTouchOnHit[string, domain.Property](),
	)

	return &Service{
		repo:            repo,
		cache:           cache,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// Create создает объект
func (s *Service) Create(ctx context.Context, req *models.CreatePropertyRequest) (*models.PropertyResponse, error) {
	s.logger.Info("Create: creating property id=%s", req.ID)

	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, domain.NewValidationError(domain.CodePropertyRequired, "id")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.NewValidationError(domain.CodeRequiredFieldMissing, "name")
	}

	required, err := normalizeRequiredFields(req.RequiredFields)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = s.defaultTimezone
	}
	if err := validateTimezone(timezone); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Property{
		ID:             id,
		Name:           name,
		RequiredFields: required,
		Timezone:       timezone,
	})
	if err != nil {
		if errors.Is(err, propertyRepo.ErrDuplicateProperty) {
			s.logger.Warn("Create: property id=%s already exists", id)
			return nil, ErrPropertyAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.cache.Set(created.ID, *created, ttlcache.DefaultTTL)
	s.logger.Info("Create: successfully created property id=%s", created.ID)
	return models.FromDomainProperty(created), nil
}

// Get возвращает объект по id
func (s *Service) Get(ctx context.Context, id string) (*domain.Property, error) {
	if item := s.cache.Get(id); item != nil {
		p := item.Value()
		return &p, nil
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			return nil, ErrPropertyNotFound
		}
		s.logger.Error("Get: repository error for property id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.cache.Set(id, *p, ttlcache.DefaultTTL)
	return p, nil
}

// GetSettings возвращает настройки объекта
func (s *Service) GetSettings(ctx context.Context, id string) (*models.PropertyResponse, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			s.logger.Warn("GetSettings: property id=%s not found", id)
		}
		return nil, err
	}
	return models.FromDomainProperty(p), nil
}

// List возвращает все объекты
func (s *Service) List(ctx context.Context) (*models.PropertyListResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.PropertyListResponse{Properties: make([]models.PropertyResponse, 0, len(list))}
	for i := range list {
		resp.Properties = append(resp.Properties, *models.FromDomainProperty(&list[i]))
	}
	return resp, nil
}

// UpdateSettings заменяет список обязательных полей и, если передан, часовой пояс
func (s *Service) UpdateSettings(ctx context.Context, id string, req *models.UpdateSettingsRequest) (*models.PropertyResponse, error) {
	s.logger.Info("UpdateSettings: updating property id=%s", id)

	required, err := normalizeRequiredFields(req.RequiredFields)
	if err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	timezone := current.Timezone
	if req.Timezone != nil {
		timezone = *req.Timezone
		if err := validateTimezone(timezone); err != nil {
			s.logger.Warn("UpdateSettings: validation failed: %v", err)
			return nil, err
		}
	}

	updated, err := s.repo.UpdateSettings(ctx, id, required, timezone)
	s.cache.Delete(id)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			return nil, ErrPropertyNotFound
		}
		s.logger.Error("UpdateSettings: repository error for property id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.cache.Set(id, *updated, ttlcache.DefaultTTL)
	s.logger.Info("UpdateSettings: property id=%s now requires %v", id, updated.RequiredFields)
	return models.FromDomainProperty(updated), nil
}

// RequiredFields возвращает обязательные поля бронирований объекта
func (s *Service) RequiredFields(ctx context.Context, propertyID string) ([]string, error) {
	p, err := s.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(p.RequiredFields), nil
}

// Вспомогательные функции

// normalizeRequiredFields проверяет имена полей, убирает повторы и сохраняет порядок
func normalizeRequiredFields(fields []string) ([]string, error) {
	if len(fields) > domain.MaxRequiredFields {
		return nil, domain.NewValidationError(domain.CodeFieldTooLong, "requiredFields")
	}

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if !fieldNamePattern.MatchString(f) {
			return nil, domain.NewValidationError(domain.CodeInvalidFieldName, f)
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

func validateTimezone(tz string) error {
	if _, err := time.LoadLocation(tz); err != nil || tz == "" {
		return domain.NewValidationError(domain.CodeRequiredFieldMissing, "timezone")
	}
	return nil
}
