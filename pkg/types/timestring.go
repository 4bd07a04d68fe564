package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString время суток в формате "HH:MM"
// Используется для хранения времени начала слотов и границ рабочего дня.
// Значение "24:00" допустимо только как маркер конца дня (результат AddMinutes).
type TimeString string

var (
	// ErrInvalidFormat возвращается при некорректном формате времени
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfRange возвращается, когда результат арифметики выходит за пределы суток
	ErrOutOfRange = errors.New("time is out of day range")
)

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m > 24*60 {
		return "", fmt.Errorf("%w: %d minutes", ErrOutOfRange, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate проверяет формат "HH:MM"
func (t TimeString) Validate() error {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	var hh, mm int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hh, &mm); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	if mm < 0 || mm > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	// "24:00" допускается как маркер конца дня
	if hh < 0 || hh > 24 || (hh == 24 && mm != 0) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	var hh, mm int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hh, &mm); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	return hh*60 + mm, nil
}

// AddMinutes возвращает время, сдвинутое на m минут вперёд
// Возвращает ErrOutOfRange, если результат выходит за пределы суток
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(total + m)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// Scan реализует sql.Scanner (postgres TIME приходит как string, []byte или time.Time)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = TimeString(normalizeDBTime(v))
	case []byte:
		*t = TimeString(normalizeDBTime(string(v)))
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidFormat, src)
	}
	return t.Validate()
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// normalizeDBTime обрезает секунды у значений вида "HH:MM:SS"
func normalizeDBTime(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}
