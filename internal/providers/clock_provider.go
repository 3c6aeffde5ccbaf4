package providers

import (
	"time"

	"github.com/coder/quartz"

	"pad/internal/models"
)

// ClockProviderInterface is the calendar source for everything day-keyed.
type ClockProviderInterface interface {
	Now() time.Time
	DayKey() string
	WeekKey() string
	Timestamp() models.Timestamp
}

type ClockProvider struct {
	clock quartz.Clock
}

func NewQuartzClock() quartz.Clock {
	return quartz.NewReal()
}

func NewClockProvider(clock quartz.Clock) ClockProviderInterface {
	return &ClockProvider{clock: clock}
}

func (c *ClockProvider) Now() time.Time {
	return c.clock.Now()
}

func (c *ClockProvider) DayKey() string {
	return models.DayKey(c.clock.Now())
}

func (c *ClockProvider) WeekKey() string {
	return models.WeekKey(c.clock.Now())
}

func (c *ClockProvider) Timestamp() models.Timestamp {
	return models.NewTimestamp(c.clock.Now())
}
