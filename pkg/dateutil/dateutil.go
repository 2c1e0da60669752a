// Package dateutil is the single place request date fields are parsed.
// Handlers must not call time.Parse directly so all endpoints accept the same
// two shapes: an ISO-8601 date ("2006-01-02", interpreted as midnight UTC) or
// a full RFC3339 date-time.
package dateutil

import (
	"fmt"
	"time"
)

const dateOnly = "2006-01-02"

// Parse normalizes a date-like request field. Anything that is not an
// ISO-8601 date or date-time is rejected.
func Parse(s string) (time.Time, error) {
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", s)
}

// ParseOptional parses s when non-empty. An empty string returns a nil time
// with no error, for nullable date columns.
func ParseOptional(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
