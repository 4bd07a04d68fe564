package get_available_slots

import (
	"fmt"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.GenderPreference, error) {
	if req.ServiceID <= 0 {
		return "", fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.PricingTierID != nil && *req.PricingTierID <= 0 {
		return "", fmt.Errorf("%w: pricingTierID must be positive", ErrInvalidInput)
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
