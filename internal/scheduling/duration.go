package scheduling

import (
	"fmt"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
)

// ExtraLine доп. услуга с количеством для расчёта длительности и цены
type ExtraLine struct {
	Extra    *domain.Extra
	Quantity int
}

// ResolveDuration вычисляет суммарную длительность бронирования в минутах:
// база услуги или выбранный тариф, плюс длительность каждой доп. услуги
// с учётом количества. Длительность доп. услуги нормализуется из часов+минут.
func ResolveDuration(service *domain.Service, tier *domain.PricingTier, extras []ExtraLine) (int, error) {
	base := service.DurationMinutes
	if tier != nil {
		if tier.ServiceID != service.ID {
			return 0, fmt.Errorf("%w: pricing tier %d does not belong to service %d",
				ErrInvalidDuration, tier.ID, service.ID)
		}
		base = tier.DurationMinutes
	}

	if base <= 0 {
		return 0, fmt.Errorf("%w: base duration must be positive", ErrInvalidDuration)
	}

	maxExtras := service.MaxExtras
	if maxExtras <= 0 {
		maxExtras = domain.DefaultMaxExtrasPerBooking
	}
	if len(extras) > maxExtras {
		return 0, fmt.Errorf("%w: at most %d distinct extras per booking", ErrInvalidDuration, maxExtras)
	}

	total := base
	seen := make(map[int64]bool, len(extras))

	for _, line := range extras {
		if line.Extra == nil {
			return 0, fmt.Errorf("%w: extra is nil", ErrInvalidDuration)
		}
		if seen[line.Extra.ID] {
			return 0, fmt.Errorf("%w: duplicate extra %d", ErrInvalidDuration, line.Extra.ID)
		}
		seen[line.Extra.ID] = true

		if line.Quantity <= 0 {
			return 0, fmt.Errorf("%w: quantity for extra %d must be positive", ErrInvalidDuration, line.Extra.ID)
		}
		if line.Extra.MaxQuantity > 0 && line.Quantity > line.Extra.MaxQuantity {
			return 0, fmt.Errorf("%w: quantity %d exceeds limit %d for extra %d",
				ErrInvalidDuration, line.Quantity, line.Extra.MaxQuantity, line.Extra.ID)
		}

		total += line.Extra.TotalMinutes() * line.Quantity
	}

	if total <= 0 {
		return 0, fmt.Errorf("%w: total duration must be positive", ErrInvalidDuration)
	}

	return total, nil
}
