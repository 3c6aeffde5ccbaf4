package providers

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
)

func TestClockProvider_Now(t *testing.T) {
	mock := quartz.NewMock(t)
	mock.Set(time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC))

	c := NewClockProvider(mock)
	assert.Equal(t, mock.Now(), c.Now())
}

func TestClockProvider_DayKey(t *testing.T) {
	mock := quartz.NewMock(t)
	mock.Set(time.Date(2026, 8, 30, 23, 59, 0, 0, time.Local))

	c := NewClockProvider(mock)
	assert.Equal(t, "2026-08-30", c.DayKey())
}

func TestClockProvider_WeekKey(t *testing.T) {
	mock := quartz.NewMock(t)
	mock.Set(time.Date(2026, 1, 1, 12, 0, 0, 0, time.Local))

	c := NewClockProvider(mock)
	assert.Equal(t, "2026-W01", c.WeekKey())
}

func TestClockProvider_Timestamp(t *testing.T) {
	mock := quartz.NewMock(t)
	mock.Set(time.Date(2026, 8, 30, 15, 4, 5, 0, time.Local))

	c := NewClockProvider(mock)
	assert.Equal(t, "2026-08-30 15:04:05", c.Timestamp().String())
}

func TestNewQuartzClock_IsReal(t *testing.T) {
	clock := NewQuartzClock()
	before := time.Now()
	now := clock.Now()
	assert.False(t, now.Before(before.Add(-time.Second)))
}
