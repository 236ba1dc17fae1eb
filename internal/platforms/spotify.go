package platforms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/lowendtheory/dubplate/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

var spotifyTrackIDPattern = regexp.MustCompile(`track[/:]([a-zA-Z0-9]+)`)

type spotifyArtist struct {
	Name string `json:"name"`
}

type spotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []spotifyArtist `json:"artists"`
	DurationMS   int64           `json:"duration_ms"`
	Popularity   int64           `json:"popularity"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

type spotifySearchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

// SpotifyService looks up tracks via the Spotify Web API using the client
// credentials grant. Tokens are fetched and refreshed by the oauth2 client.
type SpotifyService struct {
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a SpotifyService from client credentials.
// baseURL overrides the production endpoint; pass "" outside tests.
func NewSpotifyService(ctx context.Context, cfg shared.SpotifyConfig, baseURL string) (*SpotifyService, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret", shared.ErrMissingCredentials)
	}
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}
	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyTokenURL,
	}
	return &SpotifyService{httpClient: creds.Client(ctx), baseURL: baseURL}, nil
}

// Name implements [Searcher] and [Resolver].
func (s *SpotifyService) Name() Platform {
	return PlatformSpotify
}

// SearchTracks searches Spotify by free-text query.
func (s *SpotifyService) SearchTracks(ctx context.Context, query string, limit int) ([]TrackInfo, error) {
	if limit <= 0 {
		limit = 10
	}
	apiURL := fmt.Sprintf("%s/search?q=%s&type=track&limit=%d", s.baseURL, url.QueryEscape(query), limit)

	var resp spotifySearchResponse
	if err := doRequest(ctx, s.httpClient, apiURL, nil, &resp); err != nil {
		return nil, err
	}

	tracks := make([]TrackInfo, 0, len(resp.Tracks.Items))
	for _, item := range resp.Tracks.Items {
		tracks = append(tracks, item.toTrackInfo())
	}
	return tracks, nil
}

// ResolveURL extracts the track ID from a Spotify URL and fetches the track.
func (s *SpotifyService) ResolveURL(ctx context.Context, trackURL string) (*TrackInfo, error) {
	match := spotifyTrackIDPattern.FindStringSubmatch(trackURL)
	if match == nil {
		return nil, fmt.Errorf("%w: no track ID in %q", shared.ErrInvalidInput, trackURL)
	}

	var track spotifyTrack
	apiURL := s.baseURL + "/tracks/" + url.PathEscape(match[1])
	if err := doRequest(ctx, s.httpClient, apiURL, nil, &track); err != nil {
		return nil, err
	}
	info := track.toTrackInfo()
	return &info, nil
}

func (t spotifyTrack) toTrackInfo() TrackInfo {
	artist := ""
	if len(t.Artists) > 0 {
		artist = t.Artists[0].Name
	}
	info := TrackInfo{
		Platform:   PlatformSpotify,
		ExternalID: t.ID,
		Title:      t.Name,
		Artist:     artist,
		URL:        t.ExternalURLs.Spotify,
		DurationMS: t.DurationMS,
		LikeCount:  t.Popularity,
	}
	if info.URL == "" {
		info.URL = "https://open.spotify.com/track/" + t.ID
	}
	return info
}
