package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayout формат календарной даты YYYY-MM-DD
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDateFormat возвращается при некорректном формате даты
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrUnsupportedDateSource возвращается при сканировании неподдерживаемого типа из БД
	ErrUnsupportedDateSource = errors.New("unsupported date source type")
)

// Date календарный день без времени суток поверх civil.Date.
// Два Date с одинаковым Y-M-D равны через ==, нулевое значение означает "не задано".
type Date struct {
	d civil.Date
}

// NewDate создаёт Date из календарной даты time.Time в её собственной локации
func NewDate(t time.Time) Date {
	return Date{d: civil.DateOf(t)}
}

// DateOf создаёт Date из года, месяца и дня (с нормализацией как у time.Date)
func DateOf(year int, month time.Month, day int) Date {
	return NewDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Today возвращает текущую дату в указанной локации
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		return NewDate(now)
	}
	return NewDate(now.In(loc))
}

// ParseDate парсит строку формата YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil || !d.IsValid() {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return Date{d: d}, nil
}

// MustParseDate парсит дату и паникует при ошибке. Используется в тестах и константах.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero возвращает true для незаданной даты
func (d Date) IsZero() bool {
	return d.d == civil.Date{}
}

// Civil возвращает дату как civil.Date
func (d Date) Civil() civil.Date {
	return d.d
}

// Time возвращает полночь UTC этой даты
func (d Date) Time() time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	return d.d.In(time.UTC)
}

// In возвращает полночь этой даты в указанной локации
func (d Date) In(loc *time.Location) time.Time {
	return d.d.In(loc)
}

func (d Date) Year() int         { return d.d.Year }
func (d Date) Month() time.Month { return d.d.Month }
func (d Date) Day() int          { return d.d.Day }

// Weekday возвращает день недели
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays сдвигает дату на n дней
func (d Date) AddDays(n int) Date {
	return Date{d: d.d.AddDays(n)}
}

// Before возвращает true, если d раньше other
func (d Date) Before(other Date) bool {
	return d.d.Before(other.d)
}

// After возвращает true, если d позже other
func (d Date) After(other Date) bool {
	return d.d.After(other.d)
}

// Equal возвращает true для одного и того же календарного дня
func (d Date) Equal(other Date) bool {
	return d.d == other.d
}

// Compare возвращает -1, 0 или +1
func (d Date) Compare(other Date) int {
	switch {
	case d.d.Before(other.d):
		return -1
	case d.d.After(other.d):
		return 1
	}
	return 0
}

// DaysUntil возвращает количество дней от d до other (отрицательное, если other раньше)
func (d Date) DaysUntil(other Date) int {
	return other.d.DaysSince(d.d)
}

// YearMonth возвращает ключ месяца вида "2024-03"
func (d Date) YearMonth() string {
	return fmt.Sprintf("%04d-%02d", d.d.Year, int(d.d.Month))
}

// String возвращает дату в формате YYYY-MM-DD
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.d.String()
}

// MarshalJSON сериализует дату как "YYYY-MM-DD", пустая дата - null
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON разбирает "YYYY-MM-DD" или null
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan реализует sql.Scanner для колонок DATE
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v[:min(len(v), len(DateLayout))]))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v[:min(len(v), len(DateLayout))])
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedDateSource, src)
	}
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}
