package credentials

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"randevu/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// FailoverStore reads and writes through a primary store and falls back to
// a secondary when the primary errors. After a failure the primary is
// retried at most once a minute.
type FailoverStore struct {
	primary  domain.CredentialStore
	fallback domain.CredentialStore
	logger   *zerolog.Logger

	isDown    atomic.Bool
	mu        sync.Mutex
	lastCheck time.Time
}

func NewFailoverStore(primary, fallback domain.CredentialStore, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *FailoverStore) markDown(err error) {
	s.logger.Error().Err(err).Msg("primary credential store failed, falling back")
	s.isDown.Store(true)
	s.mu.Lock()
	s.lastCheck = time.Now()
	s.mu.Unlock()
}

func (s *FailoverStore) shouldRetryPrimary() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if time.Since(s.lastCheck) > time.Minute {
		s.lastCheck = time.Now()
		return true
	}
	return false
}

func (s *FailoverStore) Load(ctx context.Context) (*oauth2.Token, error) {
	if !s.isDown.Load() {
		token, err := s.primary.Load(ctx)
		if err == nil {
			return token, nil
		}
		s.markDown(err)
	} else if s.shouldRetryPrimary() {
		token, err := s.primary.Load(ctx)
		if err == nil {
			s.isDown.Store(false)
			return token, nil
		}
	}

	return s.fallback.Load(ctx)
}

// Save writes through the primary and mirrors to the fallback so a later
// failover still sees the freshest authorization. When the primary did not
// persist the token, the fallback write is the one that counts and its
// error surfaces to the caller.
func (s *FailoverStore) Save(ctx context.Context, token *oauth2.Token) error {
	primarySaved := false
	if !s.isDown.Load() {
		if err := s.primary.Save(ctx, token); err == nil {
			primarySaved = true
		} else {
			s.markDown(err)
		}
	}

	if err := s.fallback.Save(ctx, token); err != nil {
		if !primarySaved {
			return err
		}
		s.logger.Warn().Err(err).Msg("fallback credential store save failed")
	}
	return nil
}
