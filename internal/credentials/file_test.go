package credentials

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("SaveAndLoad", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "data", "token.json"))

		token := &oauth2.Token{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenType:    "Bearer",
			Expiry:       time.Now().Add(time.Hour).UTC(),
		}
		require.NoError(t, store.Save(ctx, token))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "access", got.AccessToken)
		assert.Equal(t, "refresh", got.RefreshToken)
	})

	t.Run("MissingFileMeansNotConnected", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("CorruptFileMeansNotConnected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		got, err := NewFileStore(path).Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("EmptyTokenMeansNotConnected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

		got, err := NewFileStore(path).Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
