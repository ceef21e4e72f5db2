package dbx

import (
	"database/sql"
	"fmt"
	"time"
)

// TimeLayout is fixed width and always UTC, so the lexical order of stored
// values equals their chronological order and ORDER BY works on the column.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// NullableTime renders an optional timestamp; nil becomes SQL NULL.
func NullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return FormatTime(*t)
}

// ParseTime parses a value written by FormatTime. Empty input yields the zero time.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		// rows written by other tools may carry an offset or fewer digits
		t, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
	}
	return t.UTC(), nil
}

// ParseNullTime converts a scanned nullable column into *time.Time.
func ParseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := ParseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
