package util

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateTime is a second-precision UTC timestamp serialized without a zone
// suffix, matching what the web client sends.
type DateTime struct {
	time.Time
}

const layout = "2006-01-02T15:04:05"

func ToTimePtr(dt *DateTime) *time.Time {
	if dt == nil {
		return nil
	}
	t := dt.Time
	return &t
}

func FromTime(t time.Time) DateTime {
	return DateTime{Time: t.UTC().Truncate(time.Second)}
}

func (dt *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return err
	}
	dt.Time = t
	return nil
}

func (dt DateTime) MarshalJSON() ([]byte, error) {
	if dt.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + dt.UTC().Format(layout) + `"`), nil
}

func (dt DateTime) Equal(other DateTime) bool {
	return dt.Time.Equal(other.Time)
}

func (dt DateTime) Value() (driver.Value, error) {
	if dt.IsZero() {
		return nil, nil
	}
	return dt.Time, nil
}

func (dt *DateTime) Scan(value interface{}) error {
	if value == nil {
		dt.Time = time.Time{}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		dt.Time = v
		return nil
	case []byte:
		parsed, err := time.ParseInLocation(layout, string(v), time.UTC)
		if err != nil {
			return err
		}
		dt.Time = parsed
		return nil
	case string:
		parsed, err := time.ParseInLocation(layout, v, time.UTC)
		if err != nil {
			return err
		}
		dt.Time = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan type %T into DateTime", value)
	}
}
