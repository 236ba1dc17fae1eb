package platforms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/lowendtheory/dubplate/internal/shared"
)

const youtubeBaseURL = "https://www.googleapis.com/youtube/v3"

// musicCategoryID restricts searches to YouTube's music category.
const musicCategoryID = "10"

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[?&/]|$)`),
	regexp.MustCompile(`(?:embed/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:v/)([0-9A-Za-z_-]{11})`),
}

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL.
// Returns an empty string when the URL carries no recognizable ID.
func ExtractVideoID(videoURL string) string {
	for _, pattern := range videoIDPatterns {
		if match := pattern.FindStringSubmatch(videoURL); match != nil {
			return match[1]
		}
	}
	return ""
}

type youtubeSnippet struct {
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	Thumbnails   struct {
		Default struct {
			URL string `json:"url"`
		} `json:"default"`
	} `json:"thumbnails"`
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet youtubeSnippet `json:"snippet"`
	} `json:"items"`
}

type youtubeStatistics struct {
	ViewCount string `json:"viewCount"`
	LikeCount string `json:"likeCount"`
}

type youtubeVideosResponse struct {
	Items []struct {
		ID         string            `json:"id"`
		Snippet    youtubeSnippet    `json:"snippet"`
		Statistics youtubeStatistics `json:"statistics"`
	} `json:"items"`
}

// YouTubeService looks up videos via the YouTube Data API.
type YouTubeService struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewYouTubeService creates a YouTubeService.
// baseURL overrides the production endpoint; pass "" outside tests.
func NewYouTubeService(cfg shared.YouTubeConfig, baseURL string) (*YouTubeService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: youtube api_key", shared.ErrMissingCredentials)
	}
	if baseURL == "" {
		baseURL = youtubeBaseURL
	}
	return &YouTubeService{httpClient: http.DefaultClient, apiKey: cfg.APIKey, baseURL: baseURL}, nil
}

// Name implements [Searcher] and [Resolver].
func (y *YouTubeService) Name() Platform {
	return PlatformYouTube
}

// SearchTracks searches music videos by free-text query. Statistics come
// from a second videos request keyed by the IDs of the search hits.
func (y *YouTubeService) SearchTracks(ctx context.Context, query string, limit int) ([]TrackInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	params := url.Values{}
	params.Set("key", y.apiKey)
	params.Set("q", query)
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("videoCategoryId", musicCategoryID)

	var resp youtubeSearchResponse
	if err := doRequest(ctx, y.httpClient, y.baseURL+"/search?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		ids = append(ids, item.ID.VideoID)
	}
	stats, err := y.videoStatistics(ctx, ids)
	if err != nil {
		return nil, err
	}

	tracks := make([]TrackInfo, 0, len(resp.Items))
	for _, item := range resp.Items {
		info := TrackInfo{
			Platform:   PlatformYouTube,
			ExternalID: item.ID.VideoID,
			Title:      item.Snippet.Title,
			Artist:     item.Snippet.ChannelTitle,
			URL:        "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Thumbnail:  item.Snippet.Thumbnails.Default.URL,
		}
		if s, ok := stats[item.ID.VideoID]; ok {
			info.PlayCount = parseCount(s.ViewCount)
			info.LikeCount = parseCount(s.LikeCount)
		}
		tracks = append(tracks, info)
	}
	return tracks, nil
}

// ResolveURL fetches snippet and statistics for the video a URL points at.
func (y *YouTubeService) ResolveURL(ctx context.Context, videoURL string) (*TrackInfo, error) {
	videoID := ExtractVideoID(videoURL)
	if videoID == "" {
		return nil, fmt.Errorf("%w: no video ID in %q", shared.ErrInvalidInput, videoURL)
	}

	params := url.Values{}
	params.Set("key", y.apiKey)
	params.Set("id", videoID)
	params.Set("part", "snippet,statistics")

	var resp youtubeVideosResponse
	if err := doRequest(ctx, y.httpClient, y.baseURL+"/videos?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: video %s", shared.ErrTrackNotFound, videoID)
	}

	item := resp.Items[0]
	return &TrackInfo{
		Platform:   PlatformYouTube,
		ExternalID: item.ID,
		Title:      item.Snippet.Title,
		Artist:     item.Snippet.ChannelTitle,
		URL:        videoURL,
		PlayCount:  parseCount(item.Statistics.ViewCount),
		LikeCount:  parseCount(item.Statistics.LikeCount),
		Thumbnail:  item.Snippet.Thumbnails.Default.URL,
	}, nil
}

func (y *YouTubeService) videoStatistics(ctx context.Context, ids []string) (map[string]youtubeStatistics, error) {
	params := url.Values{}
	params.Set("key", y.apiKey)
	params.Set("id", strings.Join(ids, ","))
	params.Set("part", "statistics")

	var resp youtubeVideosResponse
	if err := doRequest(ctx, y.httpClient, y.baseURL+"/videos?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	stats := make(map[string]youtubeStatistics, len(resp.Items))
	for _, item := range resp.Items {
		stats[item.ID] = item.Statistics
	}
	return stats, nil
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
