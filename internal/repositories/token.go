package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// defaultTokenKey is the row key for the single stored session token.
const defaultTokenKey = "session"

// TokenRepository stores the bearer token in the auth_tokens table. It
// implements the client's token store so CLI invocations share one session.
type TokenRepository struct {
	db  *sql.DB
	key string
}

// NewTokenRepository creates a TokenRepository on the given database.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db, key: defaultTokenKey}
}

// Token returns the stored token, or an empty string when none is stored.
func (r *TokenRepository) Token() (string, error) {
	var token string
	err := r.db.QueryRow("SELECT token FROM auth_tokens WHERE key = ?", r.key).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read auth token: %w", err)
	}
	return token, nil
}

// SetToken upserts the stored token.
func (r *TokenRepository) SetToken(token string) error {
	_, err := r.db.Exec(`
		INSERT INTO auth_tokens (key, token, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`,
		r.key, token, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to store auth token: %w", err)
	}
	return nil
}

// ClearToken removes the stored token. Clearing an absent token is not an error.
func (r *TokenRepository) ClearToken() error {
	if _, err := r.db.Exec("DELETE FROM auth_tokens WHERE key = ?", r.key); err != nil {
		return fmt.Errorf("failed to clear auth token: %w", err)
	}
	return nil
}
