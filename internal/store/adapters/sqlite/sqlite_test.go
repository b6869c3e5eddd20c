package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellokey/internal/domain"
	"github.com/dropDatabas3/hellokey/internal/store"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "creds.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_, err := s.Get(ctx, "7")
	require.ErrorIs(t, err, store.ErrNotFound)

	first := domain.ClientCredentials{UUID: 7, ClientID: "AAAAAAAAAAAAAAAA", ClientSecret: "s1"}
	require.NoError(t, s.Put(ctx, "7", first))
	assert.ErrorIs(t, s.Put(ctx, "7", domain.ClientCredentials{UUID: 7, ClientID: "B", ClientSecret: "s2"}), store.ErrAlreadyExists)

	got, err := s.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, first, *got)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "creds.db")

	s1, err := Open(ctx, path, "")
	require.NoError(t, err)
	require.NoError(t, s1.Put(ctx, "11", domain.ClientCredentials{UUID: 11, ClientID: "id", ClientSecret: "sec"}))
	require.NoError(t, s1.Close())

	s2, err := Open(ctx, path, "")
	require.NoError(t, err)
	defer s2.Close()
	got, err := s2.Get(ctx, "11")
	require.NoError(t, err)
	assert.Equal(t, uint64(11), got.UUID)
}

func TestSQLiteStore_RejectsBadTableName(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "x.db"), "drop table;")
	require.Error(t, err)
}
