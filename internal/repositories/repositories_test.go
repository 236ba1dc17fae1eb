package repositories

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lowendtheory/dubplate/internal/api"
	"github.com/lowendtheory/dubplate/internal/shared"
)

func setupDB(t *testing.T) *TokenRepository {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return NewTokenRepository(db)
}

func setupCache(t *testing.T) *CacheRepository {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return NewCacheRepository(db)
}

func TestTokenRepository(t *testing.T) {
	t.Run("Empty Store", func(t *testing.T) {
		repo := setupDB(t)
		tok, err := repo.Token()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok != "" {
			t.Errorf("expected empty token, got %q", tok)
		}
	})

	t.Run("Set And Read", func(t *testing.T) {
		repo := setupDB(t)
		if err := repo.SetToken("tok-1"); err != nil {
			t.Fatal(err)
		}
		tok, err := repo.Token()
		if err != nil {
			t.Fatal(err)
		}
		if tok != "tok-1" {
			t.Errorf("expected tok-1, got %q", tok)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		repo := setupDB(t)
		repo.SetToken("old")
		if err := repo.SetToken("new"); err != nil {
			t.Fatal(err)
		}
		tok, _ := repo.Token()
		if tok != "new" {
			t.Errorf("expected new token, got %q", tok)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		repo := setupDB(t)
		repo.SetToken("tok")
		if err := repo.ClearToken(); err != nil {
			t.Fatal(err)
		}
		tok, _ := repo.Token()
		if tok != "" {
			t.Errorf("expected empty token after clear, got %q", tok)
		}
		if err := repo.ClearToken(); err != nil {
			t.Errorf("clearing an empty store must not fail: %v", err)
		}
	})
}

func TestCacheRepository(t *testing.T) {
	t.Run("Miss On Empty", func(t *testing.T) {
		cache := setupCache(t)
		if _, ok := cache.Get("nothing"); ok {
			t.Error("expected miss on empty cache")
		}
	})

	t.Run("Roundtrip", func(t *testing.T) {
		cache := setupCache(t)
		entry := api.CacheEntry{Value: json.RawMessage(`[{"id":1}]`)}
		if err := cache.Set("charts|period=weekly", entry); err != nil {
			t.Fatal(err)
		}
		got, ok := cache.Get("charts|period=weekly")
		if !ok {
			t.Fatal("expected hit")
		}
		if string(got.Value) != `[{"id":1}]` {
			t.Errorf("unexpected value %s", got.Value)
		}
		if !got.ExpiresAt.IsZero() {
			t.Errorf("expected no expiry, got %v", got.ExpiresAt)
		}
	})

	t.Run("Expired Entry Misses", func(t *testing.T) {
		cache := setupCache(t)
		cache.Set("k", api.CacheEntry{
			Value:     json.RawMessage(`1`),
			ExpiresAt: time.Now().Add(-time.Minute),
		})
		if _, ok := cache.Get("k"); ok {
			t.Error("expired entry must report a miss")
		}
	})

	t.Run("Future Expiry Hits", func(t *testing.T) {
		cache := setupCache(t)
		cache.Set("k", api.CacheEntry{
			Value:     json.RawMessage(`1`),
			ExpiresAt: time.Now().Add(time.Hour),
		})
		if _, ok := cache.Get("k"); !ok {
			t.Error("live entry must hit")
		}
	})

	t.Run("Upsert Replaces", func(t *testing.T) {
		cache := setupCache(t)
		cache.Set("k", api.CacheEntry{Value: json.RawMessage(`1`)})
		cache.Set("k", api.CacheEntry{Value: json.RawMessage(`2`)})
		got, _ := cache.Get("k")
		if string(got.Value) != `2` {
			t.Errorf("expected replaced value, got %s", got.Value)
		}
	})

	t.Run("Delete And Clear", func(t *testing.T) {
		cache := setupCache(t)
		cache.Set("a", api.CacheEntry{Value: json.RawMessage(`1`)})
		cache.Set("b", api.CacheEntry{Value: json.RawMessage(`2`)})

		if err := cache.Delete("a"); err != nil {
			t.Fatal(err)
		}
		if _, ok := cache.Get("a"); ok {
			t.Error("expected miss after delete")
		}
		if err := cache.Clear(); err != nil {
			t.Fatal(err)
		}
		if _, ok := cache.Get("b"); ok {
			t.Error("expected miss after clear")
		}
	})

	t.Run("Stats", func(t *testing.T) {
		cache := setupCache(t)
		cache.Set("live", api.CacheEntry{Value: json.RawMessage(`1`), ExpiresAt: time.Now().Add(time.Hour)})
		cache.Set("stale", api.CacheEntry{Value: json.RawMessage(`2`), ExpiresAt: time.Now().Add(-time.Hour)})
		cache.Set("forever", api.CacheEntry{Value: json.RawMessage(`3`)})

		stats, err := cache.Stats()
		if err != nil {
			t.Fatal(err)
		}
		if stats.Entries != 3 {
			t.Errorf("expected 3 entries, got %d", stats.Entries)
		}
		if stats.Expired != 1 {
			t.Errorf("expected 1 expired entry, got %d", stats.Expired)
		}
	})
}

// Interface conformance for the client's store and cache contracts.
var (
	_ api.TokenStore = (*TokenRepository)(nil)
	_ api.Cache      = (*CacheRepository)(nil)
)
