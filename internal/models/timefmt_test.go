package models

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKey(t *testing.T) {
	ts := time.Date(2026, 3, 5, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "2026-03-05", DayKey(ts))
}

func TestWeekKey(t *testing.T) {
	// 2026-01-01 falls in ISO week 1 of 2026.
	assert.Equal(t, "2026-W01", WeekKey(time.Date(2026, 1, 1, 12, 0, 0, 0, time.Local)))
	// 2023-01-01 is a Sunday belonging to ISO week 52 of 2022.
	assert.Equal(t, "2022-W52", WeekKey(time.Date(2023, 1, 1, 12, 0, 0, 0, time.Local)))
}

func TestParseDayKey_RoundTrip(t *testing.T) {
	parsed, err := ParseDayKey("2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", DayKey(parsed))
}

func TestTimestamp_Marshal(t *testing.T) {
	ts := NewTimestamp(time.Date(2026, 8, 30, 13, 4, 5, 999, time.Local))
	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-30 13:04:05"`, string(data))
}

func TestTimestamp_MarshalZero(t *testing.T) {
	data, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))
}

func TestTimestamp_UnmarshalEmpty(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`""`), &ts))
	assert.True(t, ts.IsZero())
}

func TestTimestamp_RoundTrip(t *testing.T) {
	orig := NewTimestamp(time.Date(2026, 8, 30, 7, 30, 0, 0, time.Local))
	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var back Timestamp
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, orig.String(), back.String())
}

func TestTimestamp_UnmarshalInvalid(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"30/08/2026"`), &ts))
}
