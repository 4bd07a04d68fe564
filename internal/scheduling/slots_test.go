package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

func workdayConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ID:        1,
		Name:      "default",
		StartTime: types.TimeString("09:00"),
		EndTime:   types.TimeString("18:00"),
		// Пн-Сб
		WorkingDays: []int{1, 2, 3, 4, 5, 6},
		BreakTimes: []domain.BreakWindow{
			{Start: types.TimeString("13:00"), End: types.TimeString("14:00")},
		},
		BufferTimeMinutes: 10,
		MinAdvanceHours:   2,
		MaxAdvanceDays:    30,
		NoShowMinutes:     30,
	}
}

// Понедельник, далеко в будущем относительно now
func bookableDate() time.Time {
	return time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
}

func longBefore() time.Time {
	return time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
}

func TestGenerateSlots_Grid(t *testing.T) {
	cfg := workdayConfig()

	slots, err := GenerateSlots(cfg, bookableDate(), longBefore(), 60)
	require.NoError(t, err)

	got := make(map[string]bool, len(slots))
	for _, s := range slots {
		got[s.String()] = true
	}

	// Сетка шагает с интервалом буфера от открытия
	assert.True(t, got["09:00"])
	assert.True(t, got["09:10"])

	// Визит, заканчивающийся ровно к началу перерыва, допустим
	assert.True(t, got["12:00"])

	// Пересечение перерыва 13:00-14:00 отбрасывается
	assert.False(t, got["12:10"])
	assert.False(t, got["13:00"])
	assert.False(t, got["13:50"])
	assert.True(t, got["14:00"])

	// Последний старт, влезающий до 18:00
	assert.True(t, got["17:00"])
	assert.False(t, got["17:10"])

	// 49 кандидатов сетки минус 11 пересекающих перерыв
	assert.Len(t, slots, 38)
}

func TestGenerateSlots_DurationChangesFitNotGrid(t *testing.T) {
	cfg := workdayConfig()

	short, err := GenerateSlots(cfg, bookableDate(), longBefore(), 30)
	require.NoError(t, err)
	long, err := GenerateSlots(cfg, bookableDate(), longBefore(), 120)
	require.NoError(t, err)

	// Шаг сетки не зависит от длительности: соседние старты отличаются на буфер
	require.True(t, len(short) > 1)
	first, _ := short[0].Minutes()
	second, _ := short[1].Minutes()
	assert.Equal(t, cfg.BufferTimeMinutes, second-first)

	// Более длинный визит влезает в меньшее число стартов
	assert.Greater(t, len(short), len(long))

	lastLong, _ := long[len(long)-1].Minutes()
	assert.LessOrEqual(t, lastLong+120, 18*60)
}

func TestGenerateSlots_QuarterHourGrid(t *testing.T) {
	// Пн-Пт 09:00-18:00 без перерывов, шаг 15 минут, услуга 60 минут
	cfg := &domain.ScheduleConfig{
		StartTime:         types.TimeString("09:00"),
		EndTime:           types.TimeString("18:00"),
		WorkingDays:       []int{1, 2, 3, 4, 5},
		BufferTimeMinutes: 15,
		MinAdvanceHours:   2,
		MaxAdvanceDays:    30,
	}

	// Вторник
	tuesday := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	slots, err := GenerateSlots(cfg, tuesday, longBefore(), 60)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	// Первый кандидат 09:00, последний 17:00, позже ничего не влезает
	assert.Equal(t, "09:00", slots[0].String())
	assert.Equal(t, "17:00", slots[len(slots)-1].String())
	assert.Len(t, slots, 33)

	// Соседние кандидаты отстоят ровно на шаг сетки
	for i := 1; i < len(slots); i++ {
		prev, _ := slots[i-1].Minutes()
		cur, _ := slots[i].Minutes()
		assert.Equal(t, 15, cur-prev)
	}
}

func TestGenerateSlots_NonPositiveBufferRejected(t *testing.T) {
	cfg := workdayConfig()
	cfg.BufferTimeMinutes = 0

	// Нулевой шаг сетки — ошибка конфигурации, а не зависший цикл
	_, err := GenerateSlots(cfg, bookableDate(), longBefore(), 60)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg.BufferTimeMinutes = -10
	_, err = GenerateSlots(cfg, bookableDate(), longBefore(), 60)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerateSlots_MinAdvanceFiltersSameDay(t *testing.T) {
	cfg := workdayConfig()

	// Запрос в 10:30 того же дня: слоты раньше 12:30 недоступны
	now := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)
	slots, err := GenerateSlots(cfg, bookableDate(), now, 60)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	firstMin, err := slots[0].Minutes()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, firstMin, 12*60+30)
}

func TestValidateDate(t *testing.T) {
	cfg := workdayConfig()
	now := longBefore()

	// Прошлая дата
	err := ValidateDate(cfg, now.AddDate(0, 0, -1), now)
	assert.ErrorIs(t, err, ErrDateNotBookable)

	// Воскресенье не рабочий день
	sunday := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	err = ValidateDate(cfg, sunday, now)
	assert.ErrorIs(t, err, ErrDateNotBookable)

	// За пределами горизонта бронирования
	err = ValidateDate(cfg, now.AddDate(0, 0, cfg.MaxAdvanceDays+2), now)
	assert.ErrorIs(t, err, ErrDateNotBookable)

	// Сегодня — допустимо (точное время отсекается на уровне слотов)
	today := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, ValidateDate(cfg, today, now))
}
