package domain

import (
	"context"
	"time"

	"randevu/internal/models"

	"golang.org/x/oauth2"
)

// CalendarGateway is the external calendar capability: report busy ranges
// and create events. The real implementation talks to Google Calendar;
// tests supply deterministic fakes.
type CalendarGateway interface {
	QueryBusy(ctx context.Context, start, end time.Time) ([]models.BusyPeriod, error)
	CreateEvent(ctx context.Context, event models.CalendarEvent) (string, error)
}

// CredentialStore persists the calendar authorization blob. Load returns
// (nil, nil) when no credentials have been stored yet; that is the
// "not connected" state, not an error.
type CredentialStore interface {
	Load(ctx context.Context) (*oauth2.Token, error)
	Save(ctx context.Context, token *oauth2.Token) error
}

// Authorizer drives the OAuth connect flow and answers the credential-gate
// question both scheduling operations depend on.
type Authorizer interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) error
	Connected(ctx context.Context) bool
}
