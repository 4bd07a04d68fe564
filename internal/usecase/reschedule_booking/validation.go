package reschedule_booking

import (
	"fmt"

	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}
	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}
	if req.NewStartTime.IsZero() {
		return fmt.Errorf("%w: newStartTime is required", ErrInvalidInput)
	}
	if err := req.NewStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid newStartTime format: %v", ErrInvalidInput, err)
	}
	return nil
}

// slotOnGrid проверяет, что запрошенное время есть среди кандидатов сетки
func slotOnGrid(start types.TimeString, candidates []types.TimeString) bool {
	for _, c := range candidates {
		if c == start {
			return true
		}
	}
	return false
}
