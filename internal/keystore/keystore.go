// Package keystore provides port.CredentialStore implementations. The API
// key for the extraction provider is a single-row lookup; a missing or empty
// key is a fatal domain.ErrMissingAPIKey, never defaulted.
package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"flotta/internal/domain"
)

// PostgresStore resolves provider API keys from the provider_credentials
// table.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a Postgres-backed credential store.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) APIKey(ctx context.Context, provider string) (string, error) {
	var key string
	err := s.db.GetContext(ctx, &key,
		`SELECT api_key FROM provider_credentials WHERE provider = $1`, provider)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrMissingAPIKey
	}
	if err != nil {
		return "", fmt.Errorf("querying provider credentials: %w", err)
	}
	if key == "" {
		return "", domain.ErrMissingAPIKey
	}
	return key, nil
}

// StaticStore serves a single key from configuration, for deployments
// without a database.
type StaticStore struct {
	key string
}

// NewStaticStore creates a config-backed credential store.
func NewStaticStore(key string) *StaticStore {
	return &StaticStore{key: key}
}

func (s *StaticStore) APIKey(_ context.Context, _ string) (string, error) {
	if s.key == "" {
		return "", domain.ErrMissingAPIKey
	}
	return s.key, nil
}
