package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lowendtheory/dubplate/internal/api"
	"github.com/lowendtheory/dubplate/internal/shared"
	"github.com/urfave/cli/v3"
)

func trackIDArg(cmd *cli.Command) (int64, error) {
	raw := cmd.StringArg("id")
	if raw == "" {
		return 0, fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: track id %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

// TracksSearch searches tracks by title or artist substring.
func (r *Runner) TracksSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	r.logger.Infof("searching tracks for %q", query)

	tracks, err := api.SearchTracks(ctx, r.cached, query, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	if len(tracks) == 0 {
		return r.writePlain("No tracks matched %q\n", query)
	}
	for _, track := range tracks {
		r.writePlain("%5d  %s - %s [%.2f, %d votes]\n", track.ID, track.Artist, track.Title, track.Score, track.VoteCount)
	}
	return nil
}

// TracksSubmit submits a new track, optionally verifying its URL against the
// platform it points at first.
func (r *Runner) TracksSubmit(ctx context.Context, cmd *cli.Command) error {
	sub := api.TrackSubmission{
		URL:         cmd.String("url"),
		Title:       cmd.String("title"),
		Artist:      cmd.String("artist"),
		Genre:       cmd.String("genre"),
		Description: cmd.String("description"),
	}

	if cmd.Bool("verify") {
		if r.verifier == nil {
			return fmt.Errorf("%w: no platforms configured", shared.ErrMissingCredentials)
		}
		info, err := r.verifier.VerifyURL(ctx, sub.URL)
		if err != nil {
			return fmt.Errorf("URL verification failed: %w", err)
		}
		r.logger.Infof("verified %v on %v as %q", sub.URL, info.Platform, info.Title)
		r.writePlain("✓ Verified on %s: %s - %s\n", info.Platform, info.Artist, info.Title)
	}

	result, err := api.SubmitTrack(ctx, r.client, sub)
	if err != nil {
		return err
	}

	r.logger.Infof("submitted track %v", result.TrackID)
	return r.writePlain("✓ %s (track %d)\n", result.Message, result.TrackID)
}

// TracksVote casts a score on a track.
func (r *Runner) TracksVote(ctx context.Context, cmd *cli.Command) error {
	id, err := trackIDArg(cmd)
	if err != nil {
		return err
	}
	score := int(cmd.Int("score"))
	if score < 1 || score > 10 {
		return fmt.Errorf("%w: score must be between 1 and 10", shared.ErrInvalidFlag)
	}

	result, err := api.VoteTrack(ctx, r.client, id, score)
	if err != nil {
		return err
	}

	return r.writePlain("✓ %s New score: %.2f\n", result.Message, result.NewScore)
}

// TracksComments lists the comments on a track, newest first.
func (r *Runner) TracksComments(ctx context.Context, cmd *cli.Command) error {
	id, err := trackIDArg(cmd)
	if err != nil {
		return err
	}

	comments, err := api.ListComments(ctx, r.cached, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(comments, cmd.Bool("pretty"))
	}

	if len(comments) == 0 {
		return r.writePlain("No comments on track %d\n", id)
	}
	for _, c := range comments {
		r.writePlain("%s: %s\n", c.Username, c.Text)
	}
	return nil
}

// TracksComment posts a comment on a track.
func (r *Runner) TracksComment(ctx context.Context, cmd *cli.Command) error {
	id, err := trackIDArg(cmd)
	if err != nil {
		return err
	}

	result, err := api.AddComment(ctx, r.client, id, cmd.String("text"))
	if err != nil {
		return err
	}

	return r.writePlain("✓ %s (comment %d)\n", result.Message, result.CommentID)
}

// TracksStats shows the authenticated user's activity stats.
func (r *Runner) TracksStats(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringArg("id")
	if raw == "" {
		return fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: user id %q", shared.ErrInvalidArgument, raw)
	}

	stats, err := api.GetUserStats(ctx, r.client, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(stats, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Activity")
	r.writePlain("Votes: %d\n", stats.VotesCount)
	r.writePlain("Submissions: %d\n", stats.SubmissionsCount)
	r.writePlain("Comments: %d\n", stats.CommentsCount)
	r.writePlain("Trust score: %.1f\n", stats.TrustScore)
	return r.writePlain("Member since: %s\n", stats.MemberSince)
}
