package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayTime_MarshalZeroPadded(t *testing.T) {
	data, err := json.Marshal(PlayTime(3*3600 + 7*60))
	require.NoError(t, err)
	assert.Equal(t, `"03:07"`, string(data))
}

func TestPlayTime_MarshalTruncatesSeconds(t *testing.T) {
	data, err := json.Marshal(PlayTime(61*60 + 59))
	require.NoError(t, err)
	assert.Equal(t, `"01:01"`, string(data))
}

func TestPlayTime_MarshalLargeHours(t *testing.T) {
	data, err := json.Marshal(PlayTime(1234*3600 + 5*60))
	require.NoError(t, err)
	assert.Equal(t, `"1234:05"`, string(data))
}

func TestPlayTime_UnmarshalClockFormat(t *testing.T) {
	var p PlayTime
	require.NoError(t, json.Unmarshal([]byte(`"02:30"`), &p))
	assert.Equal(t, int64(2*3600+30*60), p.Seconds())
}

func TestPlayTime_UnmarshalPlainSeconds(t *testing.T) {
	var p PlayTime
	require.NoError(t, json.Unmarshal([]byte(`7200`), &p))
	assert.Equal(t, int64(7200), p.Seconds())
}

func TestPlayTime_UnmarshalEmpty(t *testing.T) {
	var p PlayTime
	require.NoError(t, json.Unmarshal([]byte(`""`), &p))
	assert.Equal(t, int64(0), p.Seconds())
}

func TestPlayTime_UnmarshalGarbage(t *testing.T) {
	var p PlayTime
	assert.Error(t, json.Unmarshal([]byte(`"abc:xy"`), &p))
}

func TestPlayTime_RoundTrip(t *testing.T) {
	orig := PlayTime(9*3600 + 45*60)
	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var back PlayTime
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, orig, back)
}
