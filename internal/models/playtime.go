package models

import (
	"fmt"
	"strconv"
	"strings"
)

// PlayTime is a cumulative play duration in seconds. It serializes as
// zero-padded "HH:mm"; sub-minute precision survives in memory but is
// truncated on the wire.
type PlayTime int64

func (p PlayTime) Seconds() int64 { return int64(p) }

func (p PlayTime) String() string {
	hours := int64(p) / 3600
	minutes := (int64(p) % 3600) / 60
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

func (p PlayTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func (p *PlayTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	// Plain numbers are accepted as raw seconds.
	if !strings.Contains(s, ":") {
		secs, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid play_time %q: %w", s, err)
		}
		*p = PlayTime(secs)
		return nil
	}
	parts := strings.SplitN(s, ":", 2)
	hours, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid play_time %q: %w", s, err)
	}
	minutes, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid play_time %q: %w", s, err)
	}
	*p = PlayTime(hours*3600 + minutes*60)
	return nil
}
