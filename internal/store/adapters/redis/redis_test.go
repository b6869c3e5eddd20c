package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellokey/internal/domain"
	"github.com/dropDatabas3/hellokey/internal/store"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewWithClient(client, "test"), mr
}

func TestRedisStore_RoundTripUsesDecimalKeyAndJSON(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	creds := domain.ClientCredentials{UUID: 42, ClientID: "cid", ClientSecret: "sec"}
	require.NoError(t, s.Put(ctx, "42", creds))

	raw, err := mr.Get("test:42")
	require.NoError(t, err)
	assert.JSONEq(t, `{"uuid":42,"client_id":"cid","client_secret":"sec"}`, raw)

	got, err := s.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, creds, *got)
}

func TestRedisStore_MissingKey(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Get(context.Background(), "1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedisStore_PutDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Put(ctx, "5", domain.ClientCredentials{UUID: 5, ClientID: "first", ClientSecret: "s1"}))
	err := s.Put(ctx, "5", domain.ClientCredentials{UUID: 5, ClientID: "second", ClientSecret: "s2"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := s.Get(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, "first", got.ClientID)
}

func TestRedisStore_CorruptValueIsAnError(t *testing.T) {
	s, mr := newTestStore(t)
	require.NoError(t, mr.Set("test:3", "not-json"))
	_, err := s.Get(context.Background(), "3")
	require.Error(t, err)
	assert.False(t, store.IsNotFound(err))
}

func TestRedisStore_TransportFailure(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()
	_, err := s.Get(context.Background(), "3")
	require.Error(t, err)
	assert.False(t, store.IsNotFound(err))
}

func TestRedisStore_PrefixSeparator(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	for _, prefix := range []string{"hellokey:creds", "hellokey:creds:"} {
		mr.FlushAll()
		s := NewWithClient(client, prefix)
		require.NoError(t, s.Put(ctx, "42", domain.ClientCredentials{UUID: 42, ClientID: "cid", ClientSecret: "sec"}))
		assert.Equal(t, []string{"hellokey:creds:42"}, mr.Keys(), prefix)
	}
}
