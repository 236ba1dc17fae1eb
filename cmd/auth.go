package main

import (
	"context"
	"fmt"

	"github.com/lowendtheory/dubplate/internal/api"
	"github.com/lowendtheory/dubplate/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates a new account on the backend.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")

	r.logger.Infof("registering account %v", username)

	msg, err := api.Register(ctx, r.client, username, cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}

	r.writePlain("✓ %s\n", msg.Message)
	return r.writePlain("Log in with: dubplate auth login -u %s -p <password>\n", username)
}

// AuthLogin authenticates and persists the session token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")

	r.logger.Infof("logging in as %v", username)

	session, err := r.client.Login(ctx, username, cmd.String("password"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.logger.Info("authentication successful")
	r.writePlain("✓ Logged in as %s\n", session.User.Username)
	return r.writePlain("  Trust score: %.1f, votes: %d, submissions: %d\n",
		session.User.TrustScore, session.User.VotesCount, session.User.SubmissionsCount)
}

// AuthLogout discards the stored session token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.client.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return r.writePlain("✓ Logged out\n")
}

// AuthWhoami validates the stored token and prints the account it belongs to.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	user, err := r.client.Validate(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Logged in as %s", user.Username))
	r.writePlain("Email: %s\n", user.Email)
	r.writePlain("Votes: %d\n", user.VotesCount)
	r.writePlain("Submissions: %d\n", user.SubmissionsCount)
	return r.writePlain("Trust score: %.1f\n", user.TrustScore)
}

// AuthStatus checks backend availability by calling the status endpoint.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking backend status")

	status, err := api.GetStatus(ctx, r.client)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	r.writePlain("✓ Backend is %s (v%s)\n", status.Status, status.Version)
	return r.writePlain("  %d tracks, %d users, %d votes\n", status.TracksCount, status.UsersCount, status.VotesCount)
}
