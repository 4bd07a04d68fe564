package domain

import "time"

// Gender пол сотрудника
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// GenderPreference предпочтение клиента по полу сотрудника
type GenderPreference string

const (
	PreferenceMale   GenderPreference = "male"
	PreferenceFemale GenderPreference = "female"
	PreferenceNone   GenderPreference = "no_preference"
)

// ParseGenderPreference converts a string into a GenderPreference.
// Empty string means no preference.
func ParseGenderPreference(s string) (GenderPreference, bool) {
	switch GenderPreference(s) {
	case PreferenceMale, PreferenceFemale, PreferenceNone:
		return GenderPreference(s), true
	case "":
		return PreferenceNone, true
	default:
		return "", false
	}
}

// HasSurcharge возвращает true, если предпочтение платное
func (p GenderPreference) HasSurcharge() bool {
	return p == PreferenceMale || p == PreferenceFemale
}

// Matches проверяет соответствие пола сотрудника предпочтению
func (p GenderPreference) Matches(g Gender) bool {
	switch p {
	case PreferenceMale:
		return g == GenderMale
	case PreferenceFemale:
		return g == GenderFemale
	default:
		return true
	}
}

// Employee сотрудник выездной службы
type Employee struct {
	ID        int64
	Name      string
	Gender    Gender
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
