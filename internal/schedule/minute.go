package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// MinuteOfDay is a clock time as minutes since local midnight. All slot
// arithmetic happens in this representation; time.Time appears only at the
// calendar boundary.
type MinuteOfDay int

const MinutesPerDay = 24 * 60

// ParseHHMM parses a zero-padded 24-hour "HH:MM" string.
func ParseHHMM(s string) (MinuteOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return MinuteOfDay(h*60 + m), nil
}

// String formats the minute as zero-padded "HH:MM".
func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// RoundUpToStep ceiling-rounds to the next multiple of step. 15:07 with a
// 15-minute step becomes 15:15; an exact multiple stays put.
func (m MinuteOfDay) RoundUpToStep(step int) MinuteOfDay {
	if step <= 0 {
		return m
	}
	rem := int(m) % step
	if rem == 0 {
		return m
	}
	return m + MinuteOfDay(step-rem)
}

// ClampToDay clamps into [0, 1440]. Busy periods crossing midnight relative
// to the queried day land outside the range and must be clamped before any
// overlap test.
func (m MinuteOfDay) ClampToDay() MinuteOfDay {
	if m < 0 {
		return 0
	}
	if m > MinutesPerDay {
		return MinutesPerDay
	}
	return m
}
