package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	scheduleCache "github.com/Sohelnm1/HCS-BookingService/internal/infra/cache/schedule"
	scheduleRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/schedule"
	"github.com/Sohelnm1/HCS-BookingService/internal/service/schedule/models"
)

// Service сервис конфигураций расписания
// Чтения идут через read-through кеш; изменение пишет в БД и
// инвалидирует связанные ключи
type Service struct {
	configRepo ConfigRepository
	cache      ConfigCache
	logger     Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(configRepo ConfigRepository, cache ConfigCache, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		cache:      cache,
		logger:     logger,
	}
}

// GetConfig получает конфигурацию по ID
func (s *Service) GetConfig(ctx context.Context, id int64) (*models.ScheduleConfigResponse, error) {
	cfg, err := s.getConfigByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainConfig(cfg), nil
}

// GetDefaultConfig получает конфигурацию по умолчанию
func (s *Service) GetDefaultConfig(ctx context.Context) (*models.ScheduleConfigResponse, error) {
	cfg, err := s.configRepo.GetDefault(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: GetDefaultConfig - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainConfig(cfg), nil
}

// UpdateConfig изменяет конфигурацию расписания
// Существующие бронирования не трогаем: новая конфигурация влияет
// только на последующие запросы слотов
func (s *Service) UpdateConfig(ctx context.Context, id int64, req *models.UpdateScheduleConfigRequest) (*models.ScheduleConfigResponse, error) {
	s.logger.Info("UpdateConfig: updating schedule config id=%d", id)

	cfg, err := s.getConfigByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(cfg)
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("UpdateConfig: validation failed for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := s.configRepo.Update(ctx, cfg); err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		s.logger.Error("UpdateConfig: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	// Инвалидируем сам конфиг и все слитые конфигурации услуг:
	// неизвестно, какие услуги наследуют эту базу
	s.cache.Invalidate(ctx, scheduleCache.KeyConfig(id))
	s.cache.InvalidateServices(ctx)

	s.logger.Info("UpdateConfig: schedule config id=%d updated", id)
	return models.FromDomainConfig(cfg), nil
}

// GetConfigForService возвращает действующую конфигурацию услуги:
// базовая конфигурация услуги (или дефолтная) с применённым переопределением
func (s *Service) GetConfigForService(ctx context.Context, service *domain.Service) (*domain.ScheduleConfig, error) {
	key := scheduleCache.KeyService(service.ID)
	if cfg, ok := s.cache.Get(ctx, key); ok {
		return cfg, nil
	}

	var base *domain.ScheduleConfig
	var err error
	if service.ScheduleConfigID != nil {
		base, err = s.configRepo.GetByID(ctx, *service.ScheduleConfigID)
	} else {
		base, err = s.configRepo.GetDefault(ctx)
	}
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: GetConfigForService - repository error: %v", ErrInternal, err)
	}

	override, err := s.configRepo.GetOverrideByService(ctx, service.ID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		return nil, fmt.Errorf("%w: GetConfigForService - override lookup: %v", ErrInternal, err)
	}

	merged := base.ApplyOverride(override)
	s.cache.Set(ctx, key, &merged)

	return &merged, nil
}

func (s *Service) getConfigByID(ctx context.Context, id int64) (*domain.ScheduleConfig, error) {
	key := scheduleCache.KeyConfig(id)
	if cfg, ok := s.cache.Get(ctx, key); ok {
		return cfg, nil
	}

	cfg, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: getConfigByID - repository error: %v", ErrInternal, err)
	}

	s.cache.Set(ctx, key, cfg)
	return cfg, nil
}
