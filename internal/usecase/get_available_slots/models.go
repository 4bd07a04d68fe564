package get_available_slots

import (
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
)

// Request модель запроса доступных слотов
type Request struct {
	ServiceID        int64                   // ID услуги
	Date             time.Time               // Дата визита (без времени)
	PricingTierID    *int64                  // Выбранный тариф (опционально)
	Extras           []domain.ExtraSelection // Выбранные доп. услуги
	GenderPreference string                  // male | female | no_preference | ""
}

// SlotView слот в ответе
type SlotView struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// Response модель ответа со слотами на дату
type Response struct {
	Date            string     `json:"date"` // "2026-09-15"
	DurationMinutes int        `json:"durationMinutes"`
	Slots           []SlotView `json:"slots"`
	// NoEligibleStaff true, когда под предпочтение по полу нет ни одного
	// сотрудника: все слоты недоступны, и клиенту стоит показать причину
	NoEligibleStaff bool `json:"noEligibleStaff"`
}
