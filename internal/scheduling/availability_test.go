package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/ptr"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

func activeEmployees() []*domain.Employee {
	return []*domain.Employee{
		{ID: 1, Name: "Anna", Gender: domain.GenderFemale, IsActive: true},
		{ID: 2, Name: "Boris", Gender: domain.GenderMale, IsActive: true},
	}
}

func bookingFor(id, employeeID int64, start types.TimeString, duration int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		EmployeeID:      ptr.Ptr(employeeID),
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestFilterEligible(t *testing.T) {
	employees := append(activeEmployees(),
		&domain.Employee{ID: 3, Gender: domain.GenderFemale, IsActive: false})

	got, err := FilterEligible(employees, domain.PreferenceFemale)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	got, err = FilterEligible(employees, domain.PreferenceNone)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Нет активных сотрудников нужного пола
	onlyMale := []*domain.Employee{{ID: 2, Gender: domain.GenderMale, IsActive: true}}
	_, err = FilterEligible(onlyMale, domain.PreferenceFemale)
	assert.ErrorIs(t, err, ErrNoEligibleStaff)
}

func TestAnnotateSlots(t *testing.T) {
	employees := activeEmployees()
	// Оба сотрудника заняты в 10:00, один — в 12:00
	bookings := []*domain.Booking{
		bookingFor(1, 1, "10:00", 60, domain.StatusConfirmed),
		bookingFor(2, 2, "10:00", 60, domain.StatusConfirmed),
		bookingFor(3, 1, "12:00", 60, domain.StatusConfirmed),
	}

	candidates := []types.TimeString{"09:00", "10:00", "12:00", "15:00"}
	slots, err := AnnotateSlots(candidates, 60, 0, employees, bookings, nil)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	byStart := make(map[string]bool, len(slots))
	for _, s := range slots {
		byStart[s.StartTime.String()] = s.Available
	}

	assert.True(t, byStart["09:00"])
	assert.False(t, byStart["10:00"]) // заняты оба
	assert.True(t, byStart["12:00"])  // второй сотрудник свободен
	assert.True(t, byStart["15:00"])
}

func TestAnnotateSlots_CancelledReleasesSlot(t *testing.T) {
	employees := []*domain.Employee{{ID: 1, Gender: domain.GenderFemale, IsActive: true}}
	bookings := []*domain.Booking{
		bookingFor(1, 1, "10:00", 60, domain.StatusCancelled),
	}

	slots, err := AnnotateSlots([]types.TimeString{"10:00"}, 60, 0, employees, bookings, nil)
	require.NoError(t, err)
	assert.True(t, slots[0].Available)
}

func TestAnnotateSlots_BufferKeepsGap(t *testing.T) {
	employees := []*domain.Employee{{ID: 1, Gender: domain.GenderFemale, IsActive: true}}
	bookings := []*domain.Booking{
		bookingFor(1, 1, "10:00", 60, domain.StatusConfirmed),
	}

	// С буфером 10 минут слот 11:00 упирается в занятый интервал до 11:10
	slots, err := AnnotateSlots([]types.TimeString{"11:00", "11:10"}, 60, 10, employees, bookings, nil)
	require.NoError(t, err)
	assert.False(t, slots[0].Available)
	assert.True(t, slots[1].Available)
}

func TestSelectEmployee_LeastLoadedWins(t *testing.T) {
	employees := activeEmployees()
	// У первого сотрудника уже два визита, у второго один
	bookings := []*domain.Booking{
		bookingFor(1, 1, "09:00", 60, domain.StatusConfirmed),
		bookingFor(2, 1, "15:00", 60, domain.StatusConfirmed),
		bookingFor(3, 2, "09:00", 60, domain.StatusConfirmed),
	}

	picked, err := SelectEmployee(employees, "11:00", 60, 0, bookings, nil)
	require.NoError(t, err)
	require.NotNil(t, picked)
	assert.Equal(t, int64(2), picked.ID)
}

func TestSelectEmployee_TieBreaksByID(t *testing.T) {
	picked, err := SelectEmployee(activeEmployees(), "11:00", 60, 0, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, picked)
	assert.Equal(t, int64(1), picked.ID)
}

func TestSelectEmployee_NobodyFree(t *testing.T) {
	employees := activeEmployees()
	bookings := []*domain.Booking{
		bookingFor(1, 1, "11:00", 60, domain.StatusConfirmed),
		bookingFor(2, 2, "11:00", 60, domain.StatusConfirmed),
	}

	picked, err := SelectEmployee(employees, "11:00", 60, 0, bookings, nil)
	require.NoError(t, err)
	assert.Nil(t, picked)
}

func TestSelectEmployee_ExcludesOwnBookingOnReschedule(t *testing.T) {
	employees := []*domain.Employee{{ID: 1, Gender: domain.GenderFemale, IsActive: true}}
	own := bookingFor(42, 1, "11:00", 60, domain.StatusConfirmed)

	// Без исключения собственное бронирование блокирует слот
	picked, err := SelectEmployee(employees, "11:00", 60, 0, []*domain.Booking{own}, nil)
	require.NoError(t, err)
	assert.Nil(t, picked)

	picked, err = SelectEmployee(employees, "11:00", 60, 0, []*domain.Booking{own}, ptr.Ptr(int64(42)))
	require.NoError(t, err)
	require.NotNil(t, picked)
	assert.Equal(t, int64(1), picked.ID)
}
