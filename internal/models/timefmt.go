package models

import (
	"fmt"
	"time"
)

const (
	// DayKeyLayout keys every per-day map in the aggregate.
	DayKeyLayout = "2006-01-02"
	// TimestampLayout is the local wall-clock format used for all
	// persisted timestamps.
	TimestampLayout = "2006-01-02 15:04:05"
)

func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(DayKeyLayout, key, time.Local)
}

// WeekKey returns the ISO week key for t, e.g. "2026-W35".
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Timestamp is a time.Time that marshals with TimestampLayout.
// The zero value marshals to an empty string.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.Truncate(time.Second)}
}

func (ts Timestamp) String() string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(TimestampLayout)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.String() + `"`), nil
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		ts.Time = time.Time{}
		return nil
	}
	parsed, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	ts.Time = parsed
	return nil
}
