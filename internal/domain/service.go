package domain

import "time"

// Service представляет услугу каталога
// У услуги либо базовая длительность/цена, либо набор тарифов (PricingTier);
// на одно бронирование используется ровно одно из двух
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
	// GenderPreferenceFee доплата за выбор пола сотрудника
	GenderPreferenceFee float64
	// MaxExtras максимум различных доп. услуг на одно бронирование
	MaxExtras int
	// ScheduleConfigID конфигурация расписания услуги; nil = конфигурация по умолчанию
	ScheduleConfigID *int64
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PricingTier альтернативный пакет длительность/цена для услуги
type PricingTier struct {
	ID              int64
	ServiceID       int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
}

// Extra дополнительная услуга
// Длительность хранится раздельно в часах и минутах (наследие источника данных)
type Extra struct {
	ID            int64
	Name          string
	DurationHours int
	DurationMins  int
	Price         float64
	MaxQuantity   int
	IsActive      bool
}

// TotalMinutes нормализует длительность доп. услуги в минуты
func (e *Extra) TotalMinutes() int {
	return e.DurationHours*60 + e.DurationMins
}

// ExtraSelection выбранная доп. услуга с количеством
type ExtraSelection struct {
	ExtraID  int64
	Quantity int
}
