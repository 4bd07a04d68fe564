package models

import (
	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// Request модели

// BreakWindowPayload перерыв внутри рабочего дня
type BreakWindowPayload struct {
	Start string `json:"start"` // "13:00"
	End   string `json:"end"`   // "14:00"
}

// UpdateScheduleConfigRequest запрос на изменение конфигурации расписания
// Все поля обязательны: администратор присылает полную конфигурацию
type UpdateScheduleConfigRequest struct {
	Name              string               `json:"name"`
	StartTime         string               `json:"startTime"`
	EndTime           string               `json:"endTime"`
	WorkingDays       []int                `json:"workingDays"`
	BreakTimes        []BreakWindowPayload `json:"breakTimes"`
	BufferTimeMinutes int                  `json:"bufferTimeMinutes"`
	MinAdvanceHours   int                  `json:"minAdvanceHours"`
	MaxAdvanceDays    int                  `json:"maxAdvanceDays"`
	NoShowMinutes     int                  `json:"noShowMinutes"`
}

// ApplyTo переносит поля запроса в domain модель
func (r *UpdateScheduleConfigRequest) ApplyTo(cfg *domain.ScheduleConfig) {
	cfg.Name = r.Name
	cfg.StartTime = types.TimeString(r.StartTime)
	cfg.EndTime = types.TimeString(r.EndTime)
	cfg.WorkingDays = append([]int(nil), r.WorkingDays...)
	cfg.BreakTimes = cfg.BreakTimes[:0]
	for _, br := range r.BreakTimes {
		cfg.BreakTimes = append(cfg.BreakTimes, domain.BreakWindow{
			Start: types.TimeString(br.Start),
			End:   types.TimeString(br.End),
		})
	}
	cfg.BufferTimeMinutes = r.BufferTimeMinutes
	cfg.MinAdvanceHours = r.MinAdvanceHours
	cfg.MaxAdvanceDays = r.MaxAdvanceDays
	cfg.NoShowMinutes = r.NoShowMinutes
}

// Response модели

// ScheduleConfigResponse ответ с конфигурацией расписания
type ScheduleConfigResponse struct {
	ID                int64                `json:"id"`
	Name              string               `json:"name"`
	StartTime         string               `json:"startTime"`
	EndTime           string               `json:"endTime"`
	WorkingDays       []int                `json:"workingDays"`
	BreakTimes        []BreakWindowPayload `json:"breakTimes"`
	BufferTimeMinutes int                  `json:"bufferTimeMinutes"`
	MinAdvanceHours   int                  `json:"minAdvanceHours"`
	MaxAdvanceDays    int                  `json:"maxAdvanceDays"`
	NoShowMinutes     int                  `json:"noShowMinutes"`
	IsDefault         bool                 `json:"isDefault"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(cfg *domain.ScheduleConfig) *ScheduleConfigResponse {
	if cfg == nil {
		return nil
	}

	resp := &ScheduleConfigResponse{
		ID:                cfg.ID,
		Name:              cfg.Name,
		StartTime:         cfg.StartTime.String(),
		EndTime:           cfg.EndTime.String(),
		WorkingDays:       append([]int(nil), cfg.WorkingDays...),
		BufferTimeMinutes: cfg.BufferTimeMinutes,
		MinAdvanceHours:   cfg.MinAdvanceHours,
		MaxAdvanceDays:    cfg.MaxAdvanceDays,
		NoShowMinutes:     cfg.NoShowMinutes,
		IsDefault:         cfg.IsDefault,
	}
	for _, br := range cfg.BreakTimes {
		resp.BreakTimes = append(resp.BreakTimes, BreakWindowPayload{
			Start: br.Start.String(),
			End:   br.End.String(),
		})
	}
	return resp
}
