package domain

import (
	"fmt"
	"time"

	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// BreakWindow перерыв внутри рабочего дня, [Start, End)
type BreakWindow struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// ScheduleConfig represents the working schedule and booking window bounds.
// Created and edited by administrators, read-only for the scheduling engine.
type ScheduleConfig struct {
	ID   int64
	Name string

	StartTime types.TimeString
	EndTime   types.TimeString
	// WorkingDays номера дней недели 1-7 (1 = понедельник)
	WorkingDays []int
	BreakTimes  []BreakWindow

	BufferTimeMinutes int
	MinAdvanceHours   int
	MaxAdvanceDays    int
	NoShowMinutes     int

	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduleOverride частичное переопределение конфигурации для конкретной услуги
// Явное поле-за-полем слияние вместо динамического merge словарей
type ScheduleOverride struct {
	ID        int64
	ServiceID int64

	StartTime         *types.TimeString
	EndTime           *types.TimeString
	WorkingDays       []int // nil = без переопределения
	BreakTimes        []BreakWindow
	BufferTimeMinutes *int
	MinAdvanceHours   *int
	MaxAdvanceDays    *int
	NoShowMinutes     *int
}

// Validate проверяет инварианты конфигурации:
// start < end, перерывы внутри рабочего дня и попарно не пересекаются
func (c *ScheduleConfig) Validate() error {
	if err := c.StartTime.Validate(); err != nil {
		return fmt.Errorf("schedule config: start_time: %w", err)
	}
	if err := c.EndTime.Validate(); err != nil {
		return fmt.Errorf("schedule config: end_time: %w", err)
	}
	if !c.StartTime.IsBefore(c.EndTime) {
		return fmt.Errorf("schedule config: start_time %s must be before end_time %s", c.StartTime, c.EndTime)
	}

	if c.BufferTimeMinutes < MinBufferTimeMinutes || c.BufferTimeMinutes > MaxBufferTimeMinutes {
		return fmt.Errorf("schedule config: buffer_time_minutes %d out of [%d, %d]",
			c.BufferTimeMinutes, MinBufferTimeMinutes, MaxBufferTimeMinutes)
	}
	if c.MinAdvanceHours < 0 || c.MinAdvanceHours > MaxAdvanceHoursLimit {
		return fmt.Errorf("schedule config: min_advance_hours %d out of [0, %d]", c.MinAdvanceHours, MaxAdvanceHoursLimit)
	}
	if c.MaxAdvanceDays <= 0 || c.MaxAdvanceDays > MaxAdvanceDaysLimit {
		return fmt.Errorf("schedule config: max_advance_days %d out of (0, %d]", c.MaxAdvanceDays, MaxAdvanceDaysLimit)
	}

	if len(c.WorkingDays) == 0 {
		return fmt.Errorf("schedule config: working_days must not be empty")
	}
	seen := map[int]bool{}
	for _, d := range c.WorkingDays {
		if d < 1 || d > 7 {
			return fmt.Errorf("schedule config: working day %d out of [1, 7]", d)
		}
		if seen[d] {
			return fmt.Errorf("schedule config: duplicate working day %d", d)
		}
		seen[d] = true
	}

	for i, br := range c.BreakTimes {
		if !br.Start.IsBefore(br.End) {
			return fmt.Errorf("schedule config: break %d: start %s must be before end %s", i, br.Start, br.End)
		}
		if br.Start.IsBefore(c.StartTime) || br.End.IsAfter(c.EndTime) {
			return fmt.Errorf("schedule config: break %d [%s, %s) outside working hours", i, br.Start, br.End)
		}
		for j := i + 1; j < len(c.BreakTimes); j++ {
			other := c.BreakTimes[j]
			if br.Start.IsBefore(other.End) && other.Start.IsBefore(br.End) {
				return fmt.Errorf("schedule config: breaks %d and %d overlap", i, j)
			}
		}
	}

	return nil
}

// IsWorkingDay проверяет, что день недели рабочий
// time.Weekday нумерует воскресенье нулём, конфигурация — ISO 1-7
func (c *ScheduleConfig) IsWorkingDay(weekday time.Weekday) bool {
	iso := int(weekday)
	if iso == 0 {
		iso = 7
	}
	for _, d := range c.WorkingDays {
		if d == iso {
			return true
		}
	}
	return false
}

// ApplyOverride возвращает копию конфигурации с применённым переопределением
func (c *ScheduleConfig) ApplyOverride(o *ScheduleOverride) ScheduleConfig {
	merged := *c
	// Слайсы копируем, чтобы не разделять память с базовой конфигурацией
	merged.WorkingDays = append([]int(nil), c.WorkingDays...)
	merged.BreakTimes = append([]BreakWindow(nil), c.BreakTimes...)

	if o == nil {
		return merged
	}

	if o.StartTime != nil {
		merged.StartTime = *o.StartTime
	}
	if o.EndTime != nil {
		merged.EndTime = *o.EndTime
	}
	if o.WorkingDays != nil {
		merged.WorkingDays = append([]int(nil), o.WorkingDays...)
	}
	if o.BreakTimes != nil {
		merged.BreakTimes = append([]BreakWindow(nil), o.BreakTimes...)
	}
	if o.BufferTimeMinutes != nil {
		merged.BufferTimeMinutes = *o.BufferTimeMinutes
	}
	if o.MinAdvanceHours != nil {
		merged.MinAdvanceHours = *o.MinAdvanceHours
	}
	if o.MaxAdvanceDays != nil {
		merged.MaxAdvanceDays = *o.MaxAdvanceDays
	}
	if o.NoShowMinutes != nil {
		merged.NoShowMinutes = *o.NoShowMinutes
	}

	return merged
}
