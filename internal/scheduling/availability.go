package scheduling

import (
	"sort"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// FilterEligible сужает пул сотрудников до активных и соответствующих
// предпочтению по полу. Пустой результат — ErrNoEligibleStaff: вызывающая
// сторона различает "нет сотрудников нужного пола" и "всё занято"
func FilterEligible(employees []*domain.Employee, pref domain.GenderPreference) ([]*domain.Employee, error) {
	eligible := make([]*domain.Employee, 0, len(employees))
	for _, e := range employees {
		if !e.IsActive {
			continue
		}
		if !pref.Matches(e.Gender) {
			continue
		}
		eligible = append(eligible, e)
	}

	if len(eligible) == 0 {
		return nil, ErrNoEligibleStaff
	}
	return eligible, nil
}

// AnnotateSlots помечает каждый кандидат доступным/недоступным.
// Слот доступен, если хотя бы у одного подходящего сотрудника нет
// пересечений с его бронированиями на эту дату. Недоступные слоты
// не выбрасываются — клиент рисует их задизейбленными
func AnnotateSlots(
	candidates []types.TimeString,
	durationMinutes int,
	bufferMinutes int,
	employees []*domain.Employee,
	bookings []*domain.Booking,
	excludeBookingID *int64,
) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0, len(candidates))

	for _, start := range candidates {
		startMin, err := start.Minutes()
		if err != nil {
			return nil, err
		}

		available := false
		for _, e := range employees {
			free, err := employeeFreeAt(e.ID, startMin, durationMinutes, bufferMinutes, bookings, excludeBookingID)
			if err != nil {
				return nil, err
			}
			if free {
				available = true
				break
			}
		}

		slots = append(slots, domain.Slot{
			StartTime:       start,
			DurationMinutes: durationMinutes,
			Available:       available,
		})
	}

	return slots, nil
}

// SelectEmployee детерминированно выбирает свободного сотрудника для слота:
// меньше всего занимающих слот бронирований на эту дату, при равенстве —
// наименьший id. Возвращает nil, если ни один не свободен
func SelectEmployee(
	employees []*domain.Employee,
	slotStart types.TimeString,
	durationMinutes int,
	bufferMinutes int,
	bookings []*domain.Booking,
	excludeBookingID *int64,
) (*domain.Employee, error) {
	startMin, err := slotStart.Minutes()
	if err != nil {
		return nil, err
	}

	loadByEmployee := make(map[int64]int, len(employees))
	for _, b := range bookings {
		if !b.BlocksSlot() || b.EmployeeID == nil {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		loadByEmployee[*b.EmployeeID]++
	}

	// Стабильный порядок кандидатов: по нагрузке на день, потом по id
	ordered := append([]*domain.Employee(nil), employees...)
	sort.Slice(ordered, func(i, j int) bool {
		li, lj := loadByEmployee[ordered[i].ID], loadByEmployee[ordered[j].ID]
		if li != lj {
			return li < lj
		}
		return ordered[i].ID < ordered[j].ID
	})

	for _, e := range ordered {
		free, err := employeeFreeAt(e.ID, startMin, durationMinutes, bufferMinutes, bookings, excludeBookingID)
		if err != nil {
			return nil, err
		}
		if free {
			return e, nil
		}
	}

	return nil, nil
}

// employeeFreeAt проверяет, что у сотрудника нет бронирования, чей интервал
// [start − buffer, start + duration + buffer) пересекает [slotStart, slotStart + duration).
// Буфер добавляется симметрично: между подряд идущими визитами всегда
// остаётся настроенный зазор. Интервалы полуоткрытые — касание границ
// пересечением не считается
func employeeFreeAt(
	employeeID int64,
	slotStartMin int,
	durationMinutes int,
	bufferMinutes int,
	bookings []*domain.Booking,
	excludeBookingID *int64,
) (bool, error) {
	slotEndMin := slotStartMin + durationMinutes

	for _, b := range bookings {
		if b.EmployeeID == nil || *b.EmployeeID != employeeID {
			continue
		}
		// Отменённые бронирования слот освобождают
		if !b.BlocksSlot() {
			continue
		}
		// При переносе бронирование не считается занятым против самого себя
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}

		bStart, err := b.StartTime.Minutes()
		if err != nil {
			return false, err
		}

		occupiedStart := bStart - bufferMinutes
		if occupiedStart < 0 {
			occupiedStart = 0
		}
		occupiedEnd := bStart + b.DurationMinutes + bufferMinutes

		if occupiedStart < slotEndMin && slotStartMin < occupiedEnd {
			return false, nil
		}
	}

	return true, nil
}
