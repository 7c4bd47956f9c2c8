// Package google integrates with Google Calendar: the OAuth connect flow
// and the freebusy/event gateway the scheduling core talks to.
package google

import (
	"context"
	"fmt"
	"strings"

	"randevu/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

// Authorizer owns the OAuth2 config and the credential store. It exchanges
// authorization codes for durable tokens and answers the "is the calendar
// connected" question.
type Authorizer struct {
	cfg    *oauth2.Config
	store  domain.CredentialStore
	logger *zerolog.Logger
}

func NewAuthorizer(clientID, clientSecret, baseURL string, store domain.CredentialStore, logger *zerolog.Logger) (*Authorizer, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("google client id and secret are required")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required for the oauth redirect")
	}

	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  strings.TrimRight(baseURL, "/") + "/api/v1/auth/google/callback",
		Scopes: []string{
			calendar.CalendarEventsScope,
			"openid",
			"email",
			"profile",
		},
	}

	return &Authorizer{cfg: cfg, store: store, logger: logger}, nil
}

// AuthURL builds the consent URL. Offline access plus a forced consent
// prompt so Google issues a refresh token even on re-authorization.
func (a *Authorizer) AuthURL(state string) string {
	return a.cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades the authorization code for tokens and persists them.
// Google omits the refresh token on repeat authorizations; the previously
// stored one is carried over so the connection survives.
func (a *Authorizer) Exchange(ctx context.Context, code string) error {
	token, err := a.cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("token exchange: %w", err)
	}

	if token.RefreshToken == "" {
		prev, loadErr := a.store.Load(ctx)
		if loadErr == nil && prev != nil {
			token.RefreshToken = prev.RefreshToken
		}
	}

	if err := a.store.Save(ctx, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	a.logger.Info().Msg("google calendar connected")
	return nil
}

// Connected reports whether a credential blob is stored. Both availability
// queries and booking submissions gate on this.
func (a *Authorizer) Connected(ctx context.Context) bool {
	token, err := a.store.Load(ctx)
	return err == nil && token != nil
}
