package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the wire format for calendar dates ("YYYY-MM-DD").
const DateFormat = "2006-01-02"

// Date is a calendar date without a time component.
// It marshals to and from the "2006-01-02" JSON format the web client uses,
// instead of the RFC 3339 timestamp time.Time would produce.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON renders the date as a quoted "2006-01-02" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(DateFormat) + `"`), nil
}

// UnmarshalJSON parses a quoted "2006-01-02" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected format %s", s, DateFormat)
	}
	d.Time = t
	return nil
}

// Before reports whether d is an earlier calendar date than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}
