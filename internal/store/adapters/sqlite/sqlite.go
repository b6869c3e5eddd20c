// Package sqlite implementa el CredentialStore sobre SQLite (modernc, sin cgo).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/dropDatabas3/hellokey/internal/domain"
	"github.com/dropDatabas3/hellokey/internal/store"
)

const defaultTable = "client_credentials"

var validIdentifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func init() {
	store.RegisterAdapter(&sqliteAdapter{})
}

type sqliteAdapter struct{}

func (a *sqliteAdapter) Name() string { return "sqlite" }

func (a *sqliteAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.CredentialStore, error) {
	return Open(ctx, cfg.DSN, cfg.Prefix)
}

// Store es el CredentialStore respaldado por SQLite.
type Store struct {
	db    *sql.DB
	table string
}

var _ store.CredentialStore = (*Store)(nil)

// Open abre (o crea) la base en path y asegura el schema.
func Open(ctx context.Context, path, table string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite: storage path is required")
	}
	if table == "" {
		table = defaultTable
	}
	if !validIdentifier.MatchString(table) {
		return nil, fmt.Errorf("sqlite: invalid table name %q", table)
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	s := &Store{db: db, table: table}
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		user_id    TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		created_at INTEGER NOT NULL DEFAULT (unixepoch())
	)`, table)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create table: %w", err)
	}
	return s, nil
}

func (s *Store) Get(ctx context.Context, userID string) (*domain.ClientCredentials, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT value FROM %s WHERE user_id = ?`, s.table), userID,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite: get: %w", err)
	}
	return store.Decode([]byte(value))
}

func (s *Store) Put(ctx context.Context, userID string, creds domain.ClientCredentials) error {
	b, err := store.Encode(creds)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (user_id, value) VALUES (?, ?) ON CONFLICT(user_id) DO NOTHING`, s.table),
		userID, string(b),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
