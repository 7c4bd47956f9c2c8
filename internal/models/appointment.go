package models

import "time"

// AppointmentRequest carries one booking submission. It lives for a single
// request; the calendar event is the only durable record of a booking.
type AppointmentRequest struct {
	ServiceKeys []string `json:"serviceKeys"`
	DateISO     string   `json:"dateISO"`
	TimeHHMM    string   `json:"timeHHMM"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
}

// BusyPeriod is a raw busy range as reported by the calendar.
type BusyPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BusyInterval is a busy range projected onto the queried day as minutes
// since local midnight, clamped to [0, 1440].
type BusyInterval struct {
	StartMin int `json:"start_min"`
	EndMin   int `json:"end_min"`
}

// CalendarEvent is the payload handed to the calendar gateway on commit.
type CalendarEvent struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}
