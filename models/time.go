package models

import (
	"fmt"
	"time"
)

// civilTimeLayout is the wire format for all timestamps exposed by the API:
// local date-time with second precision and no zone offset.
const civilTimeLayout = "2006-01-02T15:04:05"

// CivilTime is a time.Time that serializes as "yyyy-MM-ddTHH:mm:ss".
// The API assumes a single implicit zone, so the offset is never emitted.
type CivilTime time.Time

// MarshalJSON implements [json.Marshaler] using [civilTimeLayout].
func (c CivilTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(c).Format(civilTimeLayout) + `"`), nil
}

// UnmarshalJSON implements [json.Unmarshaler]. An empty or null value leaves
// the receiver at its zero value.
func (c *CivilTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid timestamp %s", s)
	}

	t, err := time.Parse(civilTimeLayout, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", s, err)
	}

	*c = CivilTime(t)
	return nil
}

// Time returns the wrapped time.Time value.
func (c CivilTime) Time() time.Time {
	return time.Time(c)
}

// String returns the timestamp formatted with [civilTimeLayout].
// It implements the [fmt.Stringer] interface.
func (c CivilTime) String() string {
	return time.Time(c).Format(civilTimeLayout)
}
