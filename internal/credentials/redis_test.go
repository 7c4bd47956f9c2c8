package credentials

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestRedisStore(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	store := NewRedisStore(client, "google:token")
	ctx := context.Background()

	t.Run("SaveAndLoad", func(t *testing.T) {
		token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh"}
		require.NoError(t, store.Save(ctx, token))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "access", got.AccessToken)
		assert.Equal(t, "refresh", got.RefreshToken)
	})

	t.Run("MissingKeyMeansNotConnected", func(t *testing.T) {
		empty := NewRedisStore(client, "google:other")
		got, err := empty.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("DefaultKey", func(t *testing.T) {
		def := NewRedisStore(client, "")
		assert.Equal(t, "google:token", def.key)
	})

	t.Run("NilClient", func(t *testing.T) {
		store := NewRedisStore(nil, "k")
		_, err := store.Load(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redis client is nil")
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, Ping(ctx, client))
	})
}
