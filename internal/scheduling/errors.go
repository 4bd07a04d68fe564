package scheduling

import "errors"

var (
	// ErrInvalidDuration возвращается при некорректной итоговой длительности
	// (нулевая база, превышение лимитов доп. услуг)
	ErrInvalidDuration = errors.New("scheduling: invalid duration")

	// ErrDateNotBookable возвращается, когда дата недоступна для бронирования
	// (прошлое, нерабочий день, за пределами окна бронирования)
	ErrDateNotBookable = errors.New("scheduling: date is not bookable")

	// ErrNoEligibleStaff возвращается, когда под услугу и предпочтение пола
	// не подходит ни один сотрудник
	ErrNoEligibleStaff = errors.New("scheduling: no eligible staff")

	// ErrInvalidConfig возвращается при некорректной конфигурации расписания
	// (нулевой или отрицательный шаг сетки)
	ErrInvalidConfig = errors.New("scheduling: invalid schedule config")
)
