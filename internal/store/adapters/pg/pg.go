// Package pg implementa el CredentialStore sobre PostgreSQL.
// Usa pgxpool directamente; la tabla se crea al conectar si no existe.
package pg

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/hellokey/internal/domain"
	"github.com/dropDatabas3/hellokey/internal/store"
)

const defaultTable = "client_credentials"

var validIdentifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func init() {
	store.RegisterAdapter(&postgresAdapter{})
}

type postgresAdapter struct{}

func (a *postgresAdapter) Name() string { return "postgres" }

func (a *postgresAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.CredentialStore, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres: dsn is required")
	}
	table := cfg.Prefix
	if table == "" {
		table = defaultTable
	}
	if !validIdentifier.MatchString(table) {
		return nil, fmt.Errorf("postgres: invalid table name %q", table)
	}

	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	s := &Store{pool: pool, table: table}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Store es el CredentialStore respaldado por Postgres.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

var _ store.CredentialStore = (*Store)(nil)

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		user_id    TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, s.table))
	if err != nil {
		return fmt.Errorf("postgres: create table: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, userID string) (*domain.ClientCredentials, error) {
	var value string
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT value FROM %s WHERE user_id = $1`, s.table), userID,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: get: %w", err)
	}
	return store.Decode([]byte(value))
}

func (s *Store) Put(ctx context.Context, userID string, creds domain.ClientCredentials) error {
	b, err := store.Encode(creds)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (user_id, value) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`, s.table),
		userID, string(b),
	)
	if err != nil {
		return fmt.Errorf("postgres: insert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
