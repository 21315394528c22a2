// Package timex provides a JSON-friendly duration type used by configuration
// overlays. Values may be given either as strings understood by
// time.ParseDuration ("10h", "90s") or as integer nanoseconds.
package timex

import (
	"encoding/json"
	"errors"
	"time"
)

// Duration wraps time.Duration with JSON unmarshalling for both string and
// numeric representations.
type Duration time.Duration

// Std returns the value as a standard time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON encodes the duration as its string form, e.g. "10h0m0s".
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts either a duration string or integer nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	default:
		return errors.New("invalid duration")
	}
}
