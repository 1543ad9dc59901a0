// Package types содержит общие типы-значения, используемые между слоями сервиса
package types

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateString строка даты в формате YYYY-MM-DD.
// Формат сортируется лексикографически, поэтому сравнения дат выполняются
// обычным сравнением строк без парсинга.
type DateString string

// NewDateString создает DateString из time.Time (время отбрасывается)
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(dateLayout))
}

// NewDateStringFromString создает DateString из строки с валидацией формата
func NewDateStringFromString(s string) (DateString, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date string format: %v", err)
	}
	return DateString(s), nil
}

// String возвращает строковое представление даты
func (d DateString) String() string {
	return string(d)
}

// IsZero возвращает true, если дата не задана
func (d DateString) IsZero() bool {
	return d == ""
}

// Validate проверяет корректность формата даты
func (d DateString) Validate() error {
	_, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return fmt.Errorf("invalid date string format: %v", err)
	}
	return nil
}

// Time конвертирует DateString в time.Time (полночь UTC)
func (d DateString) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date string format: %v", err)
	}
	return t, nil
}

// IsBefore возвращает true, если дата строго раньше other
func (d DateString) IsBefore(other DateString) bool {
	return string(d) < string(other)
}

// IsAfter возвращает true, если дата строго позже other
func (d DateString) IsAfter(other DateString) bool {
	return string(d) > string(other)
}

// AddDays возвращает дату, сдвинутую на days дней (days может быть отрицательным)
func (d DateString) AddDays(days int) (DateString, error) {
	t, err := d.Time()
	if err != nil {
		return "", err
	}
	return NewDateString(t.AddDate(0, 0, days)), nil
}

// DaysUntil возвращает количество дней от d до other.
// Для other раньше d результат отрицательный.
func (d DateString) DaysUntil(other DateString) (int, error) {
	from, err := d.Time()
	if err != nil {
		return 0, err
	}
	to, err := other.Time()
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from).Hours() / 24), nil
}
