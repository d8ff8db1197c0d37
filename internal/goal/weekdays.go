package goal

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// WeekdaySet is a set of weekday indexes, 0=Sunday through 6=Saturday,
// stored as a Postgres integer array.
type WeekdaySet []int

// EveryDay is the default schedule for new goals.
func EveryDay() WeekdaySet {
	return WeekdaySet{0, 1, 2, 3, 4, 5, 6}
}

func (s WeekdaySet) Contains(weekday int) bool {
	for _, d := range s {
		if d == weekday {
			return true
		}
	}
	return false
}

// Valid reports whether the set is non-empty and every member is a
// weekday index.
func (s WeekdaySet) Valid() bool {
	if len(s) == 0 {
		return false
	}
	for _, d := range s {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}

func (s WeekdaySet) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

func (s *WeekdaySet) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan type %T into WeekdaySet", value)
	}

	raw = strings.Trim(raw, "{}")
	if raw == "" {
		*s = WeekdaySet{}
		return nil
	}

	parts := strings.Split(raw, ",")
	days := make(WeekdaySet, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("invalid weekday value %q: %w", p, err)
		}
		days = append(days, d)
	}
	*s = days
	return nil
}

// GormDataType keeps AutoMigrate from guessing a column type for the slice.
func (WeekdaySet) GormDataType() string {
	return "integer[]"
}
