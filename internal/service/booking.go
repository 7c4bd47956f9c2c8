package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"randevu/internal/catalog"
	"randevu/internal/domain"
	"randevu/internal/models"
	"randevu/internal/phone"
	"randevu/internal/schedule"

	"github.com/rs/zerolog"
)

// BookingService validates booking submissions and commits them to the
// external calendar. Validation is pure and ordered; the only side effect
// is the event insert at the very end.
type BookingService struct {
	catalog   *catalog.Catalog
	gateway   domain.CalendarGateway
	auth      domain.Authorizer
	clock     *schedule.Clock
	window    schedule.Window
	closedDay int
	logger    *zerolog.Logger

	// One mutex per date serializes the re-check/insert pair so two
	// in-process requests cannot both grab the same slot. Races across
	// processes remain with the calendar itself.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewBookingService(
	cat *catalog.Catalog,
	gateway domain.CalendarGateway,
	auth domain.Authorizer,
	clock *schedule.Clock,
	window schedule.Window,
	closedDay int,
	logger *zerolog.Logger,
) *BookingService {
	return &BookingService{
		catalog:   cat,
		gateway:   gateway,
		auth:      auth,
		clock:     clock,
		window:    window,
		closedDay: closedDay,
		logger:    logger,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Submit runs the full validation chain and, if every check passes,
// creates one calendar event. The first failing check wins; the order is
// part of the contract because each rejection carries its own user-facing
// message.
func (s *BookingService) Submit(ctx context.Context, req models.AppointmentRequest) (string, error) {
	name := strings.TrimSpace(req.Name)
	dateISO := strings.TrimSpace(req.DateISO)
	timeHHMM := strings.TrimSpace(req.TimeHHMM)

	if len(req.ServiceKeys) == 0 {
		return "", models.ErrServiceRequired
	}
	if len(name) < 2 {
		return "", models.ErrNameRequired
	}

	dayStart, err := s.clock.ParseDate(dateISO)
	if err != nil {
		return "", models.ErrInvalidDate
	}
	if int(dayStart.Weekday()) == s.closedDay {
		return "", models.ErrClosedDay
	}

	startMin, err := schedule.ParseHHMM(timeHHMM)
	if err != nil {
		return "", models.ErrInvalidTime
	}

	phoneE164, ok := phone.ToE164(req.Phone)
	if !ok {
		return "", models.ErrInvalidPhone
	}

	services, err := s.catalog.Resolve(req.ServiceKeys)
	if err != nil {
		return "", err
	}
	totalDuration := 0
	for _, svc := range services {
		totalDuration += svc.DurationMin
	}
	if totalDuration < 1 {
		return "", models.ErrInvalidDuration
	}

	endMin := startMin + schedule.MinuteOfDay(totalDuration)
	if startMin < s.window.Open || endMin > s.window.Close {
		return "", models.ErrOutsideHours
	}

	start := s.clock.At(dayStart, startMin)
	end := s.clock.At(dayStart, endMin)
	// The past check uses the exact instant; rounding only applies to the
	// slots offered by availability.
	if start.Before(s.clock.Now()) {
		return "", models.ErrPastTime
	}

	if !s.auth.Connected(ctx) {
		return "", models.ErrCalendarNotConnected
	}

	lock := s.dateLock(dateISO)
	lock.Lock()
	defer lock.Unlock()

	// Freshness re-check: the slot may have been taken since it was
	// offered.
	periods, err := s.gateway.QueryBusy(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("freshness check: %w", err)
	}
	if len(periods) > 0 {
		return "", models.ErrSlotTaken
	}

	titles := make([]string, len(services))
	for i, svc := range services {
		titles[i] = svc.Title
	}

	event := models.CalendarEvent{
		Summary: "Randevu – " + strings.Join(titles, " + "),
		Description: fmt.Sprintf("Müşteri: %s\nTelefon: %s\nHizmet(ler): %s\n",
			name, phoneE164, strings.Join(titles, ", ")),
		Start: start,
		End:   end,
	}

	eventID, err := s.gateway.CreateEvent(ctx, event)
	if err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}

	s.logger.Info().
		Str("event_id", eventID).
		Str("date", dateISO).
		Str("time", timeHHMM).
		Strs("services", req.ServiceKeys).
		Msg("booking committed")

	return eventID, nil
}

func (s *BookingService) dateLock(dateISO string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Locks for past dates can no longer be requested: submissions for
	// those dates fail the past check before locking. Evict them so the
	// map stays bounded by the booking horizon.
	today := s.clock.TodayISO()
	for d := range s.locks {
		if d < today {
			delete(s.locks, d)
		}
	}

	m, ok := s.locks[dateISO]
	if !ok {
		m = &sync.Mutex{}
		s.locks[dateISO] = m
	}
	return m
}
