package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Cache кеш конфигураций расписания поверх Redis.
// Недоступность Redis не валит запрос: промах кеша ведёт в БД,
// ошибки записи только логируются.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewCache создает новый кеш расписаний
func NewCache(client *redis.Client, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// KeyConfig ключ конфигурации по ID
func KeyConfig(id int64) string {
	return fmt.Sprintf("schedule:config:%d", id)
}

// KeyService ключ слитой конфигурации услуги (база + переопределение)
func KeyService(serviceID int64) string {
	return fmt.Sprintf("schedule:service:%d", serviceID)
}

// Get читает конфигурацию из кеша; false — промах или ошибка Redis
func (c *Cache) Get(ctx context.Context, key string) (*domain.ScheduleConfig, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("[Cache.Get] Redis недоступен, идём в БД: key=%s, error=%v", key, err)
		return nil, false
	}

	var cfg domain.ScheduleConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		c.logger.Warn("[Cache.Get] Повреждённое значение в кеше: key=%s, error=%v", key, err)
		return nil, false
	}

	return &cfg, true
}

// Set сохраняет конфигурацию в кеш с TTL
func (c *Cache) Set(ctx context.Context, key string, cfg *domain.ScheduleConfig) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		c.logger.Error("[Cache.Set] Ошибка сериализации конфигурации: key=%s, error=%v", key, err)
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("[Cache.Set] Не удалось записать в Redis: key=%s, error=%v", key, err)
	}
}

// Invalidate удаляет ключи из кеша (после изменения конфигурации)
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("[Cache.Invalidate] Не удалось удалить ключи из Redis: keys=%v, error=%v", keys, err)
	}
}

// InvalidateServices удаляет все слитые конфигурации услуг.
// Вызывается при изменении базовой конфигурации: неизвестно, какие услуги
// её наследуют, поэтому сбрасываем весь префикс.
func (c *Cache) InvalidateServices(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, "schedule:service:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("[Cache.InvalidateServices] Ошибка обхода ключей: error=%v", err)
		return
	}
	c.Invalidate(ctx, keys...)
}
