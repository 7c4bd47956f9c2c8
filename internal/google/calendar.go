package google

import (
	"context"
	"fmt"
	"time"

	"randevu/internal/models"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarClient implements domain.CalendarGateway against the Google
// Calendar v3 API. A service handle is built per call from the stored
// token so refreshed credentials are picked up without a restart.
type CalendarClient struct {
	auth       *Authorizer
	calendarID string
	timezone   string
}

func NewCalendarClient(auth *Authorizer, calendarID, timezone string) *CalendarClient {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &CalendarClient{auth: auth, calendarID: calendarID, timezone: timezone}
}

func (c *CalendarClient) service(ctx context.Context) (*calendar.Service, error) {
	token, err := c.auth.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	if token == nil {
		return nil, models.ErrCalendarNotConnected
	}

	source := c.auth.cfg.TokenSource(ctx, token)
	srv, err := calendar.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return srv, nil
}

// QueryBusy returns the calendar's busy periods intersecting [start, end).
func (c *CalendarClient) QueryBusy(ctx context.Context, start, end time.Time) ([]models.BusyPeriod, error) {
	srv, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	req := &calendar.FreeBusyRequest{
		TimeMin:  start.Format(time.RFC3339),
		TimeMax:  end.Format(time.RFC3339),
		TimeZone: c.timezone,
		Items:    []*calendar.FreeBusyRequestItem{{Id: c.calendarID}},
	}

	resp, err := srv.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	cal, ok := resp.Calendars[c.calendarID]
	if !ok {
		return nil, nil
	}

	periods := make([]models.BusyPeriod, 0, len(cal.Busy))
	for _, b := range cal.Busy {
		s, err := time.Parse(time.RFC3339, b.Start)
		if err != nil {
			return nil, fmt.Errorf("parse busy start %q: %w", b.Start, err)
		}
		e, err := time.Parse(time.RFC3339, b.End)
		if err != nil {
			return nil, fmt.Errorf("parse busy end %q: %w", b.End, err)
		}
		periods = append(periods, models.BusyPeriod{Start: s, End: e})
	}
	return periods, nil
}

// CreateEvent inserts one event and returns its calendar-assigned id.
func (c *CalendarClient) CreateEvent(ctx context.Context, event models.CalendarEvent) (string, error) {
	srv, err := c.service(ctx)
	if err != nil {
		return "", err
	}

	payload := &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start: &calendar.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: c.timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: c.timezone,
		},
	}

	created, err := srv.Events.Insert(c.calendarID, payload).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return created.Id, nil
}
