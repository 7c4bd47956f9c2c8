package service

import (
	"context"
	"fmt"
	"time"

	"randevu/internal/catalog"
	"randevu/internal/domain"
	"randevu/internal/models"
	"randevu/internal/schedule"

	"github.com/rs/zerolog"
)

// AvailabilityService computes bookable start times for a set of services
// on a date. It is stateless per request; the catalog and clock are
// read-only shared state.
type AvailabilityService struct {
	catalog   *catalog.Catalog
	gateway   domain.CalendarGateway
	auth      domain.Authorizer
	clock     *schedule.Clock
	window    schedule.Window
	closedDay int
	logger    *zerolog.Logger
}

func NewAvailabilityService(
	cat *catalog.Catalog,
	gateway domain.CalendarGateway,
	auth domain.Authorizer,
	clock *schedule.Clock,
	window schedule.Window,
	closedDay int,
	logger *zerolog.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		catalog:   cat,
		gateway:   gateway,
		auth:      auth,
		clock:     clock,
		window:    window,
		closedDay: closedDay,
		logger:    logger,
	}
}

// Slots returns the ordered bookable start times ("HH:MM") for the
// requested services on dateISO. Past dates and the closed weekday return
// an empty list without touching the calendar. Structural input problems
// return a ValidationError instead.
func (s *AvailabilityService) Slots(ctx context.Context, serviceKeys []string, dateISO string) ([]string, error) {
	if dateISO == "" {
		return nil, models.ErrDateRequired
	}
	dayStart, err := s.clock.ParseDate(dateISO)
	if err != nil {
		return nil, models.ErrInvalidDate
	}

	// Past dates and the closed weekday short-circuit before any service
	// resolution or calendar traffic.
	todayISO := s.clock.TodayISO()
	if dateISO < todayISO {
		return []string{}, nil
	}
	if int(dayStart.Weekday()) == s.closedDay {
		return []string{}, nil
	}

	totalDuration, err := s.catalog.TotalDuration(serviceKeys)
	if err != nil {
		return nil, err
	}

	if !s.auth.Connected(ctx) {
		return nil, models.ErrCalendarNotConnected
	}

	dayEnd := dayStart.Add(24 * time.Hour)
	periods, err := s.gateway.QueryBusy(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("query busy intervals: %w", err)
	}
	busy := schedule.BusyFromPeriods(dayStart, periods)

	isToday := dateISO == todayISO
	slots := schedule.ComputeSlots(s.window, totalDuration, busy, isToday, s.clock.NowMinute())
	if slots == nil {
		slots = []string{}
	}

	s.logger.Debug().
		Str("date", dateISO).
		Int("duration_min", totalDuration).
		Int("busy", len(busy)).
		Int("slots", len(slots)).
		Msg("availability computed")

	return slots, nil
}
