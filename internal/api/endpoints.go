package api

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Operation is the logical name of a REST call, decoupled from its literal path.
type Operation string

const (
	OpStatus   Operation = "status"
	OpHealth   Operation = "health"
	OpRegister Operation = "register"
	OpLogin    Operation = "login"
	OpValidate Operation = "validate"

	OpCharts           Operation = "charts"
	OpChartAlgorithm   Operation = "chartAlgorithm"
	OpChartCommunity   Operation = "chartCommunity"
	OpChartUnderground Operation = "chartUnderground"
	OpChartRising      Operation = "chartRising"

	OpSearchTracks     Operation = "searchTracks"
	OpTrendingTracks   Operation = "trendingTracks"
	OpTopTracks        Operation = "topTracks"
	OpRecentTracks     Operation = "recentTracks"
	OpTracksByGenre    Operation = "tracksByGenre"
	OpTracksByPlatform Operation = "tracksByPlatform"
	OpSubmitTrack      Operation = "submitTrack"

	OpVoteTrack    Operation = "voteTrack"
	OpTrackVotes   Operation = "trackVotes"
	OpAddComment   Operation = "addComment"
	OpListComments Operation = "listComments"

	OpUserStats  Operation = "userStats"
	OpGetUser    Operation = "getUser"
	OpUpdateUser Operation = "updateUser"

	OpFollowArtist   Operation = "followArtist"
	OpUnfollowArtist Operation = "unfollowArtist"

	OpRecommendations Operation = "recommendations"

	OpListPlaylists  Operation = "listPlaylists"
	OpCreatePlaylist Operation = "createPlaylist"
	OpGetPlaylist    Operation = "getPlaylist"
	OpUpdatePlaylist Operation = "updatePlaylist"
	OpDeletePlaylist Operation = "deletePlaylist"

	OpAnalytics Operation = "analytics"
)

// Endpoint is the request template for one operation. Path segments of the
// form {name} are filled from [Request.Args].
type Endpoint struct {
	Method       string
	Path         string
	RequiresAuth bool
}

// endpoints maps every operation to its request template. The table is
// immutable after init and validated for completeness on startup.
var endpoints = map[Operation]Endpoint{
	OpStatus:   {Method: "GET", Path: "/status"},
	OpHealth:   {Method: "GET", Path: "/health"},
	OpRegister: {Method: "POST", Path: "/auth/register"},
	OpLogin:    {Method: "POST", Path: "/auth/login"},
	OpValidate: {Method: "GET", Path: "/auth/validate", RequiresAuth: true},

	OpCharts:           {Method: "GET", Path: "/charts"},
	OpChartAlgorithm:   {Method: "GET", Path: "/charts/algorithm"},
	OpChartCommunity:   {Method: "GET", Path: "/charts/community"},
	OpChartUnderground: {Method: "GET", Path: "/charts/underground"},
	OpChartRising:      {Method: "GET", Path: "/charts/rising"},

	OpSearchTracks:     {Method: "GET", Path: "/tracks/search"},
	OpTrendingTracks:   {Method: "GET", Path: "/tracks/trending"},
	OpTopTracks:        {Method: "GET", Path: "/tracks/top"},
	OpRecentTracks:     {Method: "GET", Path: "/tracks/recent"},
	OpTracksByGenre:    {Method: "GET", Path: "/tracks/genre"},
	OpTracksByPlatform: {Method: "GET", Path: "/tracks/platform"},
	OpSubmitTrack:      {Method: "POST", Path: "/tracks", RequiresAuth: true},

	OpVoteTrack:    {Method: "POST", Path: "/tracks/{track_id}/vote", RequiresAuth: true},
	OpTrackVotes:   {Method: "GET", Path: "/tracks/{track_id}/votes"},
	OpAddComment:   {Method: "POST", Path: "/tracks/{track_id}/comments", RequiresAuth: true},
	OpListComments: {Method: "GET", Path: "/tracks/{track_id}/comments"},

	OpUserStats:  {Method: "GET", Path: "/users/{user_id}/stats", RequiresAuth: true},
	OpGetUser:    {Method: "GET", Path: "/users/{user_id}"},
	OpUpdateUser: {Method: "PUT", Path: "/users/{user_id}", RequiresAuth: true},

	OpFollowArtist:   {Method: "POST", Path: "/artists/{artist_id}/follow", RequiresAuth: true},
	OpUnfollowArtist: {Method: "DELETE", Path: "/artists/{artist_id}/follow", RequiresAuth: true},

	OpRecommendations: {Method: "GET", Path: "/recommendations", RequiresAuth: true},

	OpListPlaylists:  {Method: "GET", Path: "/playlists", RequiresAuth: true},
	OpCreatePlaylist: {Method: "POST", Path: "/playlists", RequiresAuth: true},
	OpGetPlaylist:    {Method: "GET", Path: "/playlists/{playlist_id}"},
	OpUpdatePlaylist: {Method: "PUT", Path: "/playlists/{playlist_id}", RequiresAuth: true},
	OpDeletePlaylist: {Method: "DELETE", Path: "/playlists/{playlist_id}", RequiresAuth: true},

	OpAnalytics: {Method: "GET", Path: "/analytics", RequiresAuth: true},
}

func init() {
	for op, ep := range endpoints {
		if ep.Method == "" || ep.Path == "" || !strings.HasPrefix(ep.Path, "/") {
			panic(fmt.Sprintf("api: malformed endpoint table entry for %q", op))
		}
	}
}

// Resolve looks up the endpoint template for an operation. Unknown operations
// fail with a configuration error; no network call is ever made for them.
func Resolve(op Operation) (Endpoint, error) {
	ep, ok := endpoints[op]
	if !ok {
		return Endpoint{}, &ClientError{
			Type:    ErrorTypeConfiguration,
			Message: fmt.Sprintf("unknown operation %q", op),
			Op:      op,
		}
	}
	return ep, nil
}

// Operations returns all operation names in the endpoint table, sorted.
func Operations() []Operation {
	ops := make([]Operation, 0, len(endpoints))
	for op := range endpoints {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// expand substitutes {name} placeholders in the path template from args.
// A placeholder with no matching argument is a configuration error.
func (e Endpoint) expand(op Operation, args map[string]string) (string, error) {
	if !strings.Contains(e.Path, "{") {
		return e.Path, nil
	}

	var b strings.Builder
	for _, segment := range strings.Split(e.Path, "/") {
		if segment == "" {
			continue
		}
		b.WriteByte('/')
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			name := segment[1 : len(segment)-1]
			value, ok := args[name]
			if !ok || value == "" {
				return "", &ClientError{
					Type:    ErrorTypeConfiguration,
					Message: fmt.Sprintf("missing path argument %q", name),
					Op:      op,
				}
			}
			b.WriteString(url.PathEscape(value))
			continue
		}
		b.WriteString(segment)
	}
	return b.String(), nil
}
