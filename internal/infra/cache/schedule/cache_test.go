package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, 5*time.Minute, nopLogger{}), mr
}

func sampleConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ID:                1,
		Name:              "default",
		StartTime:         types.TimeString("09:00"),
		EndTime:           types.TimeString("18:00"),
		WorkingDays:       []int{1, 2, 3, 4, 5, 6},
		BreakTimes:        []domain.BreakWindow{{Start: "13:00", End: "14:00"}},
		BufferTimeMinutes: 10,
		MinAdvanceHours:   2,
		MaxAdvanceDays:    30,
		NoShowMinutes:     30,
	}
}

func TestCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cfg := sampleConfig()
	cache.Set(ctx, KeyConfig(cfg.ID), cfg)

	got, ok := cache.Get(ctx, KeyConfig(cfg.ID))
	require.True(t, ok)
	assert.Equal(t, cfg, got)
}

func TestCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t)

	got, ok := cache.Get(context.Background(), KeyConfig(99))
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCache_TTLExpires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, KeyConfig(1), sampleConfig())

	mr.FastForward(6 * time.Minute)

	_, ok := cache.Get(ctx, KeyConfig(1))
	assert.False(t, ok)
}

func TestCache_CorruptedValueIsMiss(t *testing.T) {
	cache, mr := newTestCache(t)

	require.NoError(t, mr.Set(KeyConfig(1), "{not-json"))

	_, ok := cache.Get(context.Background(), KeyConfig(1))
	assert.False(t, ok)
}

func TestCache_RedisDownIsMiss(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, KeyConfig(1), sampleConfig())
	mr.Close()

	// Недоступность Redis ведёт в БД, а не в ошибку
	_, ok := cache.Get(ctx, KeyConfig(1))
	assert.False(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, KeyConfig(1), sampleConfig())
	cache.Invalidate(ctx, KeyConfig(1))

	_, ok := cache.Get(ctx, KeyConfig(1))
	assert.False(t, ok)
}

func TestCache_InvalidateServices(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	// Базовая конфигурация остаётся, слитые конфигурации услуг сбрасываются
	cache.Set(ctx, KeyConfig(1), sampleConfig())
	cache.Set(ctx, KeyService(10), sampleConfig())
	cache.Set(ctx, KeyService(11), sampleConfig())

	cache.InvalidateServices(ctx)

	_, ok := cache.Get(ctx, KeyService(10))
	assert.False(t, ok)
	_, ok = cache.Get(ctx, KeyService(11))
	assert.False(t, ok)
	_, ok = cache.Get(ctx, KeyConfig(1))
	assert.True(t, ok)
}
