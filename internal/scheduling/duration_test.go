package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
)

func TestResolveDuration_BaseAndTier(t *testing.T) {
	service := &domain.Service{ID: 1, DurationMinutes: 60, MaxExtras: 3}

	got, err := ResolveDuration(service, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 60, got)

	// Тариф переопределяет базовую длительность
	tier := &domain.PricingTier{ID: 10, ServiceID: 1, DurationMinutes: 90}
	got, err = ResolveDuration(service, tier, nil)
	require.NoError(t, err)
	assert.Equal(t, 90, got)

	// Чужой тариф отклоняется
	foreign := &domain.PricingTier{ID: 11, ServiceID: 2, DurationMinutes: 45}
	_, err = ResolveDuration(service, foreign, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestResolveDuration_Extras(t *testing.T) {
	service := &domain.Service{ID: 1, DurationMinutes: 60, MaxExtras: 2}
	massage := &domain.Extra{ID: 5, DurationHours: 0, DurationMins: 20, MaxQuantity: 2}
	therapy := &domain.Extra{ID: 6, DurationHours: 1, DurationMins: 0, MaxQuantity: 1}

	// 60 + 20×2 + 60 = 160
	got, err := ResolveDuration(service, nil, []ExtraLine{
		{Extra: massage, Quantity: 2},
		{Extra: therapy, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 160, got)

	// Превышение max_quantity
	_, err = ResolveDuration(service, nil, []ExtraLine{{Extra: therapy, Quantity: 2}})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	// Дубликат доп. услуги
	_, err = ResolveDuration(service, nil, []ExtraLine{
		{Extra: massage, Quantity: 1},
		{Extra: massage, Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	// Больше max_extras различных позиций
	extra3 := &domain.Extra{ID: 7, DurationMins: 10, MaxQuantity: 1}
	_, err = ResolveDuration(service, nil, []ExtraLine{
		{Extra: massage, Quantity: 1},
		{Extra: therapy, Quantity: 1},
		{Extra: extra3, Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}
