package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Value реализует driver.Valuer для записи DateString в БД
func (d DateString) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return string(d), nil
}

// Scan реализует sql.Scanner для чтения DateString из БД.
// Колонки типа date драйвер возвращает как time.Time.
func (d *DateString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = NewDateString(v)
		return nil
	case string:
		parsed, err := NewDateStringFromString(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := NewDateStringFromString(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateString", src)
	}
}
