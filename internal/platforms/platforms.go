package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lowendtheory/dubplate/internal/shared"
)

// Platform identifies one streaming service.
type Platform string

const (
	PlatformSpotify    Platform = "spotify"
	PlatformSoundCloud Platform = "soundcloud"
	PlatformYouTube    Platform = "youtube"
)

// TrackInfo is the platform-neutral result of a lookup or search.
type TrackInfo struct {
	Platform   Platform `json:"platform"`
	ExternalID string   `json:"external_id"`
	Title      string   `json:"title"`
	Artist     string   `json:"artist"`
	URL        string   `json:"url"`
	DurationMS int64    `json:"duration_ms,omitempty"`
	PlayCount  int64    `json:"play_count,omitempty"`
	LikeCount  int64    `json:"like_count,omitempty"`
	Thumbnail  string   `json:"thumbnail,omitempty"`
}

// Searcher looks up tracks on one platform.
type Searcher interface {
	Name() Platform
	SearchTracks(ctx context.Context, query string, limit int) ([]TrackInfo, error)
}

// Resolver turns a track URL into platform data.
type Resolver interface {
	Name() Platform
	ResolveURL(ctx context.Context, trackURL string) (*TrackInfo, error)
}

// doRequest performs a GET and decodes the JSON response into result.
func doRequest(ctx context.Context, client *http.Client, apiURL string, header http.Header, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
