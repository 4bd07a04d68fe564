package domain

// Default configuration values
const (
	DefaultBufferTimeMinutes   = 15
	DefaultMinAdvanceHours     = 2
	DefaultMaxAdvanceDays      = 30
	DefaultNoShowMinutes       = 30
	DefaultMaxRescheduleCount  = 2
	DefaultMaxExtrasPerBooking = 5
)

// Business validation constants
const (
	MinBufferTimeMinutes        = 5
	MaxBufferTimeMinutes        = 120
	MaxAdvanceHoursLimit        = 168 // неделя
	MaxAdvanceDaysLimit         = 365
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses статусы, из которых бронирование больше не переходит
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// BlockingStatuses статусы, занимающие слот сотрудника
// Отменённые бронирования слот освобождают; completed и no_show продолжают
// занимать свой исходный интервал
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
}
