// Package redis implementa el CredentialStore sobre Redis.
// La creación usa SETNX para que dos callbacks concurrentes no se pisen.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/hellokey/internal/domain"
	"github.com/dropDatabas3/hellokey/internal/store"
)

const defaultPrefix = "creds"

func init() {
	store.RegisterAdapter(&redisAdapter{})
}

type redisAdapter struct{}

func (a *redisAdapter) Name() string { return "redis" }

func (a *redisAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.CredentialStore, error) {
	addr := cfg.RedisAddr
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewWithClient(rdb, cfg.Prefix), nil
}

// Store es el CredentialStore respaldado por Redis.
type Store struct {
	client goredis.UniversalClient
	prefix string
}

var _ store.CredentialStore = (*Store)(nil)

// NewWithClient crea el store con un cliente ya configurado.
// Útil para tests con miniredis.
func NewWithClient(client goredis.UniversalClient, prefix string) *Store {
	// el separador lo agrega key(); "creds:" y "creds" son equivalentes
	prefix = strings.TrimRight(prefix, ":")
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(userID string) string {
	return s.prefix + ":" + userID
}

func (s *Store) Get(ctx context.Context, userID string) (*domain.ClientCredentials, error) {
	b, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return store.Decode(b)
}

func (s *Store) Put(ctx context.Context, userID string, creds domain.ClientCredentials) error {
	b, err := store.Encode(creds)
	if err != nil {
		return err
	}
	// Credentials never expire (TTL=0).
	ok, err := s.client.SetNX(ctx, s.key(userID), b, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return store.ErrAlreadyExists
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
