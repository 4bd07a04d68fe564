package create_booking

import (
	"fmt"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.GenderPreference, error) {
	if req.UserID <= 0 {
		return "", fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return "", fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.PricingTierID != nil && *req.PricingTierID <= 0 {
		return "", fmt.Errorf("%w: pricingTierID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return "", fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return "", fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if req.CouponCode != nil && *req.CouponCode == "" {
		return "", fmt.Errorf("%w: couponCode must not be empty", ErrInvalidInput)
	}

	for _, sel := range req.Extras {
		if sel.ExtraID <= 0 {
			return "", fmt.Errorf("%w: extraID must be positive", ErrInvalidInput)
		}
		if sel.Quantity <= 0 {
			return "", fmt.Errorf("%w: extra quantity must be positive", ErrInvalidInput)
		}
	}

	pref, ok := domain.ParseGenderPreference(req.GenderPreference)
	if !ok {
		return "", fmt.Errorf("%w: unknown gender preference %q", ErrInvalidInput, req.GenderPreference)
	}

	return pref, nil
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
