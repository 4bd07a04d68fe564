package scheduling

import (
	"fmt"
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// ValidateDate проверяет, что дата в принципе доступна для бронирования:
// не в прошлом, рабочий день недели, не дальше max_advance_days от сегодня.
// Сегодняшняя дата допустима — минимальное время до визита проверяется
// по точным таймстемпам на уровне слотов в GenerateSlots
func ValidateDate(cfg *domain.ScheduleConfig, date, now time.Time) error {
	if isDateInPast(date, now) {
		return fmt.Errorf("%w: date is in the past", ErrDateNotBookable)
	}

	if !cfg.IsWorkingDay(date.Weekday()) {
		return fmt.Errorf("%w: not a working day", ErrDateNotBookable)
	}

	maxDate := startOfDay(now).AddDate(0, 0, cfg.MaxAdvanceDays)
	if startOfDay(date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateNotBookable, cfg.MaxAdvanceDays)
	}

	return nil
}

// GenerateSlots генерирует кандидатов начала визита на дату.
// Сетка фиксированная: от начала рабочего дня с шагом buffer_time_minutes,
// независимо от запрошенной длительности (плотность сетки не меняется от
// длины услуги). Кандидат отбрасывается, если:
//   - интервал [start, start+duration) пересекает перерыв;
//   - интервал выходит за конец рабочего дня;
//   - точный таймстемп начала раньше now + min_advance_hours
func GenerateSlots(cfg *domain.ScheduleConfig, date, now time.Time, durationMinutes int) ([]types.TimeString, error) {
	if err := ValidateDate(cfg, date, now); err != nil {
		return nil, err
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidDuration)
	}
	// Шаг сетки равен буферу; нулевой буфер не дал бы циклу продвинуться
	if cfg.BufferTimeMinutes <= 0 {
		return nil, fmt.Errorf("%w: buffer_time_minutes must be positive", ErrInvalidConfig)
	}

	openMin, err := cfg.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("schedule start_time: %w", err)
	}
	closeMin, err := cfg.EndTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("schedule end_time: %w", err)
	}

	breaks, err := breakIntervals(cfg.BreakTimes)
	if err != nil {
		return nil, err
	}

	minAllowed := now.Add(time.Duration(cfg.MinAdvanceHours) * time.Hour)

	slots := make([]types.TimeString, 0)
	for start := openMin; start+durationMinutes <= closeMin; start += cfg.BufferTimeMinutes {
		end := start + durationMinutes

		if intersectsBreak(start, end, breaks) {
			continue
		}

		slotAt := atMinute(date, start)
		if slotAt.Before(minAllowed) {
			continue
		}

		ts, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			return nil, err
		}
		slots = append(slots, ts)
	}

	return slots, nil
}

type interval struct {
	start int
	end   int
}

func breakIntervals(breaks []domain.BreakWindow) ([]interval, error) {
	result := make([]interval, 0, len(breaks))
	for _, br := range breaks {
		s, err := br.Start.Minutes()
		if err != nil {
			return nil, fmt.Errorf("break start: %w", err)
		}
		e, err := br.End.Minutes()
		if err != nil {
			return nil, fmt.Errorf("break end: %w", err)
		}
		result = append(result, interval{start: s, end: e})
	}
	return result, nil
}

// intersectsBreak проверяет пересечение полуоткрытых интервалов
func intersectsBreak(start, end int, breaks []interval) bool {
	for _, br := range breaks {
		if start < br.end && br.start < end {
			return true
		}
	}
	return false
}

// atMinute возвращает точный таймстемп: дата + минуты с начала суток
func atMinute(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isDateInPast(date, now time.Time) bool {
	return startOfDay(date).Before(startOfDay(now))
}
