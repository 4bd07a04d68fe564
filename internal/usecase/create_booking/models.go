package create_booking

import (
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID           int64                   // ID пользователя
	ServiceID        int64                   // ID услуги
	PricingTierID    *int64                  // Выбранный тариф (опционально)
	Extras           []domain.ExtraSelection // Выбранные доп. услуги
	Date             time.Time               // Дата визита (без времени)
	StartTime        types.TimeString        // Время начала слота ("10:00")
	GenderPreference string                  // male | female | no_preference | ""
	CouponCode       *string                 // Код купона (опционально)
	Notes            *string                 // Заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	UserID          int64            // ID пользователя
	ServiceID       int64            // ID услуги
	EmployeeID      int64            // Назначенный сотрудник
	AppointmentDate time.Time        // Дата визита
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	PaymentStatus   string           // Статус оплаты

	// Расчёт стоимости
	BaseAmount     float64
	ExtrasAmount   float64
	GenderFee      float64
	DiscountAmount float64
	TotalAmount    float64
	InvoiceNumber  string

	// Платёж
	PaymentOrderID *string
	PaymentURL     *string

	CreatedAt time.Time
}
