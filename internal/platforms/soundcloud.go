package platforms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lowendtheory/dubplate/internal/shared"
)

const soundcloudBaseURL = "https://api.soundcloud.com"

type soundcloudUser struct {
	Username string `json:"username"`
}

type soundcloudTrack struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	User          soundcloudUser `json:"user"`
	PermalinkURL  string         `json:"permalink_url"`
	Duration      int64          `json:"duration"`
	PlaybackCount int64          `json:"playback_count"`
	LikesCount    int64          `json:"likes_count"`
	ArtworkURL    string         `json:"artwork_url"`
}

type soundcloudSearchResponse struct {
	Collection []soundcloudTrack `json:"collection"`
}

// SoundCloudService looks up tracks via the public SoundCloud API. The
// client ID is passed as a query parameter on every request.
type SoundCloudService struct {
	httpClient *http.Client
	clientID   string
	baseURL    string
}

// NewSoundCloudService creates a SoundCloudService.
// baseURL overrides the production endpoint; pass "" outside tests.
func NewSoundCloudService(cfg shared.SoundCloudConfig, baseURL string) (*SoundCloudService, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: soundcloud client_id", shared.ErrMissingCredentials)
	}
	if baseURL == "" {
		baseURL = soundcloudBaseURL
	}
	return &SoundCloudService{httpClient: http.DefaultClient, clientID: cfg.ClientID, baseURL: baseURL}, nil
}

// Name implements [Searcher] and [Resolver].
func (s *SoundCloudService) Name() Platform {
	return PlatformSoundCloud
}

// SearchTracks searches SoundCloud by free-text query.
func (s *SoundCloudService) SearchTracks(ctx context.Context, query string, limit int) ([]TrackInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	params := url.Values{}
	params.Set("client_id", s.clientID)
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("linked_partitioning", "1")

	var resp soundcloudSearchResponse
	if err := doRequest(ctx, s.httpClient, s.baseURL+"/tracks?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	tracks := make([]TrackInfo, 0, len(resp.Collection))
	for _, item := range resp.Collection {
		tracks = append(tracks, item.toTrackInfo())
	}
	return tracks, nil
}

// ResolveURL resolves a public SoundCloud permalink to track data.
func (s *SoundCloudService) ResolveURL(ctx context.Context, trackURL string) (*TrackInfo, error) {
	params := url.Values{}
	params.Set("client_id", s.clientID)
	params.Set("url", trackURL)

	var track soundcloudTrack
	if err := doRequest(ctx, s.httpClient, s.baseURL+"/resolve?"+params.Encode(), nil, &track); err != nil {
		return nil, err
	}
	info := track.toTrackInfo()
	return &info, nil
}

func (t soundcloudTrack) toTrackInfo() TrackInfo {
	return TrackInfo{
		Platform:   PlatformSoundCloud,
		ExternalID: strconv.FormatInt(t.ID, 10),
		Title:      t.Title,
		Artist:     t.User.Username,
		URL:        t.PermalinkURL,
		DurationMS: t.Duration,
		PlayCount:  t.PlaybackCount,
		LikeCount:  t.LikesCount,
		Thumbnail:  t.ArtworkURL,
	}
}
