package schedule

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Clock projects the current instant into the business's fixed civil
// timezone. The shop runs on a fixed UTC offset; the server's own timezone
// is never consulted.
type Clock struct {
	loc *time.Location

	// NowFunc overrides the time source in tests. Nil means time.Now.
	NowFunc func() time.Time
}

// NewClock builds a clock for a fixed UTC offset, e.g. ("Europe/Istanbul", 3).
func NewClock(name string, offsetHours int) *Clock {
	return &Clock{loc: time.FixedZone(name, offsetHours*3600)}
}

func (c *Clock) now() time.Time {
	if c.NowFunc != nil {
		return c.NowFunc().In(c.loc)
	}
	return time.Now().In(c.loc)
}

// Now is the current instant in the business timezone.
func (c *Clock) Now() time.Time { return c.now() }

// TodayISO is today's date as "YYYY-MM-DD" in the business timezone.
func (c *Clock) TodayISO() string { return c.now().Format(dateLayout) }

// NowMinute is the current minute of day in the business timezone.
func (c *Clock) NowMinute() MinuteOfDay {
	t := c.now()
	return MinuteOfDay(t.Hour()*60 + t.Minute())
}

// ParseDate validates a "YYYY-MM-DD" string and returns local midnight of
// that date in the business timezone.
func (c *Clock) ParseDate(dateISO string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, dateISO, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateISO, err)
	}
	return t, nil
}

// At resolves a date plus minute-of-day to an instant in the business
// timezone.
func (c *Clock) At(dayStart time.Time, m MinuteOfDay) time.Time {
	return dayStart.Add(time.Duration(m) * time.Minute)
}
