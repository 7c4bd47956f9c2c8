package schedule

import (
	"time"

	"randevu/internal/models"
)

// Window is a day's bookable range plus the slot granularity.
type Window struct {
	Open  MinuteOfDay
	Close MinuteOfDay
	Step  int
}

// BusyFromPeriods projects raw calendar busy periods onto the day starting
// at dayStart, clamped to [0, 1440]. Periods that collapse to nothing after
// clamping are dropped.
func BusyFromPeriods(dayStart time.Time, periods []models.BusyPeriod) []models.BusyInterval {
	out := make([]models.BusyInterval, 0, len(periods))
	for _, p := range periods {
		start := MinuteOfDay(p.Start.Sub(dayStart).Round(time.Minute) / time.Minute).ClampToDay()
		end := MinuteOfDay(p.End.Sub(dayStart).Round(time.Minute) / time.Minute).ClampToDay()
		if end > start {
			out = append(out, models.BusyInterval{StartMin: int(start), EndMin: int(end)})
		}
	}
	return out
}

// Overlaps reports whether the half-open candidate [start, start+duration)
// intersects the busy interval.
func Overlaps(start MinuteOfDay, durationMin int, busy models.BusyInterval) bool {
	return int(start) < busy.EndMin && int(start)+durationMin > busy.StartMin
}

// ComputeSlots enumerates bookable start times within the window, in
// ascending order. When isToday, the window opening is raised to "now"
// rounded up to the next step so a slot is never offered in the past.
// A slot is kept only if [t, t+duration) overlaps no busy interval.
func ComputeSlots(w Window, durationMin int, busy []models.BusyInterval, isToday bool, nowMin MinuteOfDay) []string {
	if durationMin < 1 {
		return nil
	}

	open := w.Open
	if isToday {
		rounded := nowMin.RoundUpToStep(w.Step)
		if rounded > open {
			open = rounded
		}
	}

	if int(open)+durationMin > int(w.Close) {
		return nil
	}

	slots := make([]string, 0, (int(w.Close)-int(open))/w.Step+1)
	for t := open; int(t)+durationMin <= int(w.Close); t += MinuteOfDay(w.Step) {
		taken := false
		for _, b := range busy {
			if Overlaps(t, durationMin, b) {
				taken = true
				break
			}
		}
		if !taken {
			slots = append(slots, t.String())
		}
	}
	return slots
}
