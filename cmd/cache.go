package main

import (
	"context"
	"fmt"

	"github.com/lowendtheory/dubplate/internal/repositories"
	"github.com/urfave/cli/v3"
)

// CacheStats shows how many responses the persisted cache holds.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	repo, ok := r.cache.(*repositories.CacheRepository)
	if !ok {
		return fmt.Errorf("persistent cache is not configured; run 'dubplate setup database' first")
	}

	stats, err := repo.Stats()
	if err != nil {
		return err
	}

	r.writePlain("Cached responses: %d\n", stats.Entries)
	return r.writePlain("Expired: %d\n", stats.Expired)
}

// CacheClear drops every cached response.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	if r.cache == nil {
		return fmt.Errorf("persistent cache is not configured; run 'dubplate setup database' first")
	}

	if err := r.cache.Clear(); err != nil {
		return err
	}

	r.logger.Info("cache cleared")
	return r.writePlain("✓ Cache cleared\n")
}
