package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellokey/internal/domain"
	"github.com/dropDatabas3/hellokey/internal/store"
)

func TestStore_GetMissing(t *testing.T) {
	s := New()
	_, err := s.Get(context.Background(), "42")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_PutIsCreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := New()
	first := domain.ClientCredentials{UUID: 7, ClientID: "a", ClientSecret: "b"}
	require.NoError(t, s.Put(ctx, "7", first))

	err := s.Put(ctx, "7", domain.ClientCredentials{UUID: 7, ClientID: "x", ClientSecret: "y"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := s.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, first, *got)
}

func TestStore_ConcurrentPutsHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.Put(ctx, "9", domain.ClientCredentials{UUID: 9, ClientID: "id", ClientSecret: string(rune('a' + i%26))})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, s.Len())
}

func TestOpen_ViaRegistry(t *testing.T) {
	cs, err := store.Open(context.Background(), store.AdapterConfig{Driver: "memory"})
	require.NoError(t, err)
	require.NoError(t, cs.Ping(context.Background()))
	require.NoError(t, cs.Close())
}
