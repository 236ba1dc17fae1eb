package api

// Track is one chart or search entry.
type Track struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Artist       string  `json:"artist"`
	Genre        string  `json:"genre"`
	Subgenre     string  `json:"subgenre,omitempty"`
	Description  string  `json:"description,omitempty"`
	Score        float64 `json:"score"`
	TotalScore   int64   `json:"total_score"`
	VoteCount    int64   `json:"vote_count"`
	DurationMS   int64   `json:"duration_ms,omitempty"`
	SoundcloudID string  `json:"soundcloud_id,omitempty"`
	YoutubeID    string  `json:"youtube_id,omitempty"`
	SpotifyID    string  `json:"spotify_id,omitempty"`
	IsVerified   bool    `json:"is_verified"`
	SubmittedBy  int64   `json:"submitted_by,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// User is the account payload returned by login and token validation.
type User struct {
	ID               int64   `json:"id"`
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	VotesCount       int64   `json:"votes_count"`
	SubmissionsCount int64   `json:"submissions_count"`
	TrustScore       float64 `json:"trust_score"`
}

// AuthSession is the login response. The token is attached as a Bearer
// credential on subsequent authenticated operations.
type AuthSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Comment is one track comment.
type Comment struct {
	ID             int64   `json:"id"`
	Text           string  `json:"text"`
	Username       string  `json:"username"`
	CreatedAt      string  `json:"created_at"`
	SentimentScore float64 `json:"sentiment_score"`
}

// UserStats summarizes a user's activity.
type UserStats struct {
	VotesCount       int64   `json:"votes_count"`
	SubmissionsCount int64   `json:"submissions_count"`
	TrustScore       float64 `json:"trust_score"`
	CommentsCount    int64   `json:"comments_count"`
	MemberSince      string  `json:"member_since"`
}

// Status is the backend health payload.
type Status struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	TracksCount int64  `json:"tracks_count"`
	UsersCount  int64  `json:"users_count"`
	VotesCount  int64  `json:"votes_count"`
	Timestamp   string `json:"timestamp"`
}

// TrackSubmission is the body for submitting a new track.
type TrackSubmission struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Genre       string `json:"genre"`
	Description string `json:"description,omitempty"`
}

// SubmitResult acknowledges a track submission.
type SubmitResult struct {
	Message string `json:"message"`
	TrackID int64  `json:"track_id"`
}

// VoteResult acknowledges a vote and carries the track's recalculated score.
type VoteResult struct {
	Message  string  `json:"message"`
	NewScore float64 `json:"new_score"`
}

// CommentResult acknowledges a posted comment.
type CommentResult struct {
	Message   string `json:"message"`
	CommentID int64  `json:"comment_id"`
}

// Message is the backend's generic acknowledgement payload.
type Message struct {
	Message string `json:"message"`
}
