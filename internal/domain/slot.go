package domain

import "github.com/Sohelnm1/HCS-BookingService/pkg/types"

// Slot represents a candidate appointment start time
// Недоступные слоты тоже возвращаются клиенту (рисуются задизейбленными)
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool
}
