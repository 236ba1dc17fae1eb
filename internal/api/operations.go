package api

import (
	"context"
	"encoding/json"
	"strconv"
)

// decode unmarshals a raw response into out, reporting a Decode failure when
// the payload does not match the expected shape.
func decode[T any](op Operation, raw json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &ClientError{Type: ErrorTypeDecode, Message: "unexpected response shape", Op: op, Cause: err}
	}
	return out, nil
}

// ChartParams filter a chart request. Zero values fall back to the backend
// defaults (weekly, all genres, twenty entries).
type ChartParams struct {
	Period string
	Genre  string
	Limit  int
}

// Query renders the filters as ordered query parameters.
func (p ChartParams) Query() []Param {
	var q []Param
	if p.Period != "" {
		q = append(q, Param{"period", p.Period})
	}
	if p.Genre != "" {
		q = append(q, Param{"genre", p.Genre})
	}
	if p.Limit > 0 {
		q = append(q, Param{"limit", strconv.Itoa(p.Limit)})
	}
	return q
}

// Charts fetches the current chart for the given filters.
func Charts(ctx context.Context, d Doer, params ChartParams) ([]Track, error) {
	raw, err := d.Call(ctx, OpCharts, Request{Query: params.Query()})
	if err != nil {
		return nil, err
	}
	return decode[[]Track](OpCharts, raw)
}

// DecodeTracks unmarshals a raw chart or search response into tracks.
func DecodeTracks(raw json.RawMessage) ([]Track, error) {
	return decode[[]Track](OpCharts, raw)
}

// SearchTracks searches tracks by title or artist substring.
func SearchTracks(ctx context.Context, d Doer, query string, limit int) ([]Track, error) {
	q := []Param{{"q", query}}
	if limit > 0 {
		q = append(q, Param{"limit", strconv.Itoa(limit)})
	}
	raw, err := d.Call(ctx, OpSearchTracks, Request{Query: q})
	if err != nil {
		return nil, err
	}
	return decode[[]Track](OpSearchTracks, raw)
}

// SubmitTrack submits a new track. Requires authentication.
func SubmitTrack(ctx context.Context, d Doer, sub TrackSubmission) (SubmitResult, error) {
	raw, err := d.Call(ctx, OpSubmitTrack, Request{Body: sub})
	if err != nil {
		return SubmitResult{}, err
	}
	return decode[SubmitResult](OpSubmitTrack, raw)
}

// VoteTrack casts a score from 1 to 10 on a track. Requires authentication.
func VoteTrack(ctx context.Context, d Doer, trackID int64, score int) (VoteResult, error) {
	req := Request{
		Args: map[string]string{"track_id": strconv.FormatInt(trackID, 10)},
		Body: map[string]int{"score": score},
	}
	raw, err := d.Call(ctx, OpVoteTrack, req)
	if err != nil {
		return VoteResult{}, err
	}
	return decode[VoteResult](OpVoteTrack, raw)
}

// AddComment posts a comment on a track. Requires authentication.
func AddComment(ctx context.Context, d Doer, trackID int64, text string) (CommentResult, error) {
	req := Request{
		Args: map[string]string{"track_id": strconv.FormatInt(trackID, 10)},
		Body: map[string]string{"text": text},
	}
	raw, err := d.Call(ctx, OpAddComment, req)
	if err != nil {
		return CommentResult{}, err
	}
	return decode[CommentResult](OpAddComment, raw)
}

// ListComments fetches a track's comments, newest first.
func ListComments(ctx context.Context, d Doer, trackID int64) ([]Comment, error) {
	req := Request{Args: map[string]string{"track_id": strconv.FormatInt(trackID, 10)}}
	raw, err := d.Call(ctx, OpListComments, req)
	if err != nil {
		return nil, err
	}
	return decode[[]Comment](OpListComments, raw)
}

// GetUserStats fetches activity stats for the authenticated user.
func GetUserStats(ctx context.Context, d Doer, userID int64) (UserStats, error) {
	req := Request{Args: map[string]string{"user_id": strconv.FormatInt(userID, 10)}}
	raw, err := d.Call(ctx, OpUserStats, req)
	if err != nil {
		return UserStats{}, err
	}
	return decode[UserStats](OpUserStats, raw)
}

// GetStatus fetches the backend health payload.
func GetStatus(ctx context.Context, d Doer) (Status, error) {
	raw, err := d.Call(ctx, OpStatus, Request{})
	if err != nil {
		return Status{}, err
	}
	return decode[Status](OpStatus, raw)
}

// Register creates an account. The backend returns only an acknowledgement;
// a follow-up Login is needed to obtain a token.
func Register(ctx context.Context, d Doer, username, email, password string) (Message, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	raw, err := d.Call(ctx, OpRegister, Request{Body: body})
	if err != nil {
		return Message{}, err
	}
	return decode[Message](OpRegister, raw)
}

// Login authenticates and stores the returned token in the client's token
// store so later authenticated operations carry it automatically.
func (c *Client) Login(ctx context.Context, username, password string) (AuthSession, error) {
	body := map[string]string{"username": username, "password": password}
	raw, err := c.Call(ctx, OpLogin, Request{Body: body})
	if err != nil {
		return AuthSession{}, err
	}
	session, err := decode[AuthSession](OpLogin, raw)
	if err != nil {
		return AuthSession{}, err
	}
	if session.Token == "" {
		return AuthSession{}, &ClientError{Type: ErrorTypeDecode, Message: "login response missing token", Op: OpLogin}
	}
	if err := c.tokens.SetToken(session.Token); err != nil {
		return AuthSession{}, &ClientError{Type: ErrorTypeAuth, Message: "failed to store auth token", Op: OpLogin, Cause: err}
	}
	return session, nil
}

// Logout discards the stored token. Purely client side; the backend session
// expires on its own.
func (c *Client) Logout() error {
	return c.tokens.ClearToken()
}

// Validate checks the stored token against the backend and returns the
// account it belongs to.
func (c *Client) Validate(ctx context.Context) (User, error) {
	raw, err := c.Call(ctx, OpValidate, Request{})
	if err != nil {
		return User{}, err
	}
	wrapped, err := decode[struct {
		User User `json:"user"`
	}](OpValidate, raw)
	if err != nil {
		return User{}, err
	}
	return wrapped.User, nil
}
