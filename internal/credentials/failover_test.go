package credentials

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type failingStore struct {
	loadErr error
	saveErr error
}

func (f *failingStore) Load(ctx context.Context) (*oauth2.Token, error) {
	return nil, f.loadErr
}

func (f *failingStore) Save(ctx context.Context, token *oauth2.Token) error {
	return f.saveErr
}

func TestFailoverStore(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("PrimaryHealthy", func(t *testing.T) {
		primary := NewFileStore(filepath.Join(t.TempDir(), "primary.json"))
		fallback := NewFileStore(filepath.Join(t.TempDir(), "fallback.json"))
		store := NewFailoverStore(primary, fallback, &logger)

		token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh"}
		require.NoError(t, store.Save(ctx, token))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "access", got.AccessToken)
	})

	t.Run("SaveMirrorsToFallback", func(t *testing.T) {
		primary := NewFileStore(filepath.Join(t.TempDir(), "primary.json"))
		fallback := NewFileStore(filepath.Join(t.TempDir(), "fallback.json"))
		store := NewFailoverStore(primary, fallback, &logger)

		token := &oauth2.Token{AccessToken: "access"}
		require.NoError(t, store.Save(ctx, token))

		got, err := fallback.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "access", got.AccessToken)
	})

	t.Run("LoadFallsBackWhenPrimaryFails", func(t *testing.T) {
		primary := &failingStore{loadErr: errors.New("connection refused")}
		fallback := NewFileStore(filepath.Join(t.TempDir(), "fallback.json"))
		require.NoError(t, fallback.Save(ctx, &oauth2.Token{AccessToken: "backup"}))

		store := NewFailoverStore(primary, fallback, &logger)

		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "backup", got.AccessToken)
		assert.True(t, store.isDown.Load())

		// Subsequent loads keep serving from the fallback.
		got, err = store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "backup", got.AccessToken)
	})

	t.Run("SaveFallsBackWhenPrimaryFails", func(t *testing.T) {
		primary := &failingStore{saveErr: errors.New("connection refused")}
		fallback := NewFileStore(filepath.Join(t.TempDir(), "fallback.json"))
		store := NewFailoverStore(primary, fallback, &logger)

		require.NoError(t, store.Save(ctx, &oauth2.Token{AccessToken: "access"}))

		got, err := fallback.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "access", got.AccessToken)
	})

	t.Run("SaveFailsWhenNeitherStorePersists", func(t *testing.T) {
		primary := &failingStore{saveErr: errors.New("connection refused")}
		fallback := &failingStore{saveErr: errors.New("disk full")}
		store := NewFailoverStore(primary, fallback, &logger)

		err := store.Save(ctx, &oauth2.Token{AccessToken: "access"})
		require.Error(t, err)
		assert.ErrorContains(t, err, "disk full")

		// Same when the primary is already marked down.
		err = store.Save(ctx, &oauth2.Token{AccessToken: "access"})
		require.Error(t, err)
	})

	t.Run("SaveSucceedsWhenOnlyFallbackFails", func(t *testing.T) {
		primary := NewFileStore(filepath.Join(t.TempDir(), "primary.json"))
		fallback := &failingStore{saveErr: errors.New("disk full")}
		store := NewFailoverStore(primary, fallback, &logger)

		// The token is durable in the primary; the mirror failure is only
		// logged.
		require.NoError(t, store.Save(ctx, &oauth2.Token{AccessToken: "access"}))

		got, err := primary.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "access", got.AccessToken)
	})
}
