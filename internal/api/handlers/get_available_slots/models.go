package get_available_slots

import (
	"time"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	getAvailableSlots "github.com/Sohelnm1/HCS-BookingService/internal/usecase/get_available_slots"
)

// ExtraSelectionPayload выбранная доп. услуга
type ExtraSelectionPayload struct {
	ExtraID  int64 `json:"extraId"`
	Quantity int   `json:"quantity"`
}

// AvailableSlotsRequest HTTP request model
type AvailableSlotsRequest struct {
	ServiceID        int64                   `json:"serviceId"`
	Date             string                  `json:"date"` // YYYY-MM-DD
	PricingTierID    *int64                  `json:"pricingTierId,omitempty"`
	Extras           []ExtraSelectionPayload `json:"extras,omitempty"`
	GenderPreference string                  `json:"genderPreference,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *AvailableSlotsRequest) ToUseCaseRequest() (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	extras := make([]domain.ExtraSelection, 0, len(r.Extras))
	for _, e := range r.Extras {
		extras = append(extras, domain.ExtraSelection{
			ExtraID:  e.ExtraID,
			Quantity: e.Quantity,
		})
	}

	return &getAvailableSlots.Request{
		ServiceID:        r.ServiceID,
		Date:             date,
		PricingTierID:    r.PricingTierID,
		Extras:           extras,
		GenderPreference: r.GenderPreference,
	}, nil
}
