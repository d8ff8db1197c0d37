package util

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateOnly is a calendar date with no time-of-day component. It marshals
// as "YYYY-MM-DD" and maps to a Postgres date column.
type DateOnly struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDateOnly(year int, month time.Month, day int) DateOnly {
	return DateOnly{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC calendar date.
func Today() DateOnly {
	return FromTime(time.Now().UTC())
}

func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return DateOnly{}, err
	}
	return DateOnly{t}, nil
}

func FromTime(t time.Time) DateOnly {
	return NewDateOnly(t.Year(), t.Month(), t.Day())
}

func (d DateOnly) String() string {
	return d.Format(dateLayout)
}

// DayNumber is the ordinal day count (days since the Unix epoch), so
// interval arithmetic stays well-defined across month and year boundaries.
func (d DateOnly) DayNumber() int {
	norm := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return int(norm.Unix() / 86400)
}

func (d DateOnly) AddDays(n int) DateOnly {
	return NewDateOnly(d.Year(), d.Month(), d.Day()+n)
}

// WeekdayIndex returns the weekday as 0=Sunday..6=Saturday.
func (d DateOnly) WeekdayIndex() int {
	return int(d.Time.Weekday())
}

func (d DateOnly) Equal(other DateOnly) bool {
	return d.DayNumber() == other.DayNumber()
}

func (d DateOnly) Before(other DateOnly) bool {
	return d.DayNumber() < other.DayNumber()
}

func (d DateOnly) After(other DateOnly) bool {
	return d.DayNumber() > other.DayNumber()
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d DateOnly) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (d *DateOnly) Scan(value interface{}) error {
	if value == nil {
		d.Time = time.Time{}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case []byte:
		parsed, err := time.Parse(dateLayout, string(v))
		if err != nil {
			return err
		}
		d.Time = parsed
		return nil
	case string:
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			return err
		}
		d.Time = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan type %T into DateOnly", value)
	}
}

// GormDataType tells GORM to create a date column for DateOnly fields.
func (DateOnly) GormDataType() string {
	return "date"
}
