package main

import (
	"context"
	"fmt"

	"github.com/lowendtheory/dubplate/internal/shared"
	"github.com/urfave/cli/v3"
)

// VerifyURL resolves a track URL on the platform its host belongs to.
func (r *Runner) VerifyURL(ctx context.Context, cmd *cli.Command) error {
	trackURL := cmd.StringArg("url")
	if trackURL == "" {
		return fmt.Errorf("%w: url", shared.ErrMissingArgument)
	}
	if r.verifier == nil {
		return fmt.Errorf("%w: no platforms configured", shared.ErrMissingCredentials)
	}

	r.logger.Infof("verifying %v", trackURL)

	info, err := r.verifier.VerifyURL(ctx, trackURL)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(info, cmd.Bool("pretty"))
	}

	r.writePlain("✓ %s: %s - %s\n", info.Platform, info.Artist, info.Title)
	if info.PlayCount > 0 {
		r.writePlain("  plays: %d, likes: %d\n", info.PlayCount, info.LikeCount)
	}
	return nil
}

// VerifySearch runs a query against every configured platform concurrently.
func (r *Runner) VerifySearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}
	if r.verifier == nil {
		return fmt.Errorf("%w: no platforms configured", shared.ErrMissingCredentials)
	}

	r.logger.Infof("cross-platform search for %q on %v platforms", query, len(r.verifier.Platforms()))

	results, err := r.verifier.CrossPlatformSearch(ctx, query, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	for platform, tracks := range results {
		r.writePlainHeader(string(platform))
		for _, track := range tracks {
			r.writePlain("%s - %s\n  %s\n", track.Artist, track.Title, track.URL)
		}
	}
	return nil
}
