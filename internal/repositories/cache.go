package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lowendtheory/dubplate/internal/api"
)

// CacheRepository persists API responses in the api_cache table. It
// implements the client's cache so repeat chart reads skip the network even
// across process restarts.
//
// A lookup that fails for any reason reports a miss; the caller falls
// through to the network and the cache heals on the next store.
type CacheRepository struct {
	db *sql.DB
}

// CacheStats summarizes the stored entries.
type CacheStats struct {
	Entries int
	Expired int
}

// NewCacheRepository creates a CacheRepository on the given database.
func NewCacheRepository(db *sql.DB) *CacheRepository {
	return &CacheRepository{db: db}
}

// Get returns the entry for key. Expired entries report a miss but stay in
// place until the next Set or Clear.
func (r *CacheRepository) Get(key string) (api.CacheEntry, bool) {
	var value string
	var expiresAt sql.NullString
	err := r.db.QueryRow("SELECT value, expires_at FROM api_cache WHERE key = ?", key).Scan(&value, &expiresAt)
	if err != nil {
		return api.CacheEntry{}, false
	}

	entry := api.CacheEntry{Value: json.RawMessage(value)}
	if expiresAt.Valid && expiresAt.String != "" {
		ts, perr := time.Parse(time.RFC3339, expiresAt.String)
		if perr != nil {
			return api.CacheEntry{}, false
		}
		if time.Now().After(ts) {
			return api.CacheEntry{}, false
		}
		entry.ExpiresAt = ts
	}
	return entry, true
}

// Set upserts an entry. A zero ExpiresAt stores NULL, meaning the entry
// never expires.
func (r *CacheRepository) Set(key string, entry api.CacheEntry) error {
	var expiresAt any
	if !entry.ExpiresAt.IsZero() {
		expiresAt = entry.ExpiresAt.UTC().Format(time.RFC3339)
	}
	_, err := r.db.Exec(`
		INSERT INTO api_cache (key, value, expires_at, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at, created_at = excluded.created_at`,
		key, string(entry.Value), expiresAt, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Delete removes one entry. Deleting an absent key is not an error.
func (r *CacheRepository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM api_cache WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (r *CacheRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM api_cache"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Stats counts stored and expired entries.
func (r *CacheRepository) Stats() (CacheStats, error) {
	var stats CacheStats
	err := r.db.QueryRow("SELECT COUNT(*) FROM api_cache").Scan(&stats.Entries)
	if err != nil {
		return CacheStats{}, fmt.Errorf("failed to count cache entries: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	err = r.db.QueryRow("SELECT COUNT(*) FROM api_cache WHERE expires_at IS NOT NULL AND expires_at < ?", now).Scan(&stats.Expired)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return CacheStats{}, fmt.Errorf("failed to count expired entries: %w", err)
	}
	return stats, nil
}
