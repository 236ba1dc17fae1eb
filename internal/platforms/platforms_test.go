package platforms

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lowendtheory/dubplate/internal/shared"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"Watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"Short URL", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"Embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"Watch URL With Params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"No ID", "https://www.youtube.com/", ""},
		{"Not YouTube", "https://example.com/video", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractVideoID(tc.url); got != tc.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestDetectPlatform(t *testing.T) {
	cases := []struct {
		url      string
		platform Platform
		ok       bool
	}{
		{"https://open.spotify.com/track/abc123", PlatformSpotify, true},
		{"https://soundcloud.com/artist/track", PlatformSoundCloud, true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", PlatformYouTube, true},
		{"https://youtu.be/dQw4w9WgXcQ", PlatformYouTube, true},
		{"https://bandcamp.com/track/xyz", "", false},
	}
	for _, tc := range cases {
		platform, ok := detectPlatform(tc.url)
		if platform != tc.platform || ok != tc.ok {
			t.Errorf("detectPlatform(%q) = (%s, %v), want (%s, %v)", tc.url, platform, ok, tc.platform, tc.ok)
		}
	}
}

func TestSoundCloudService(t *testing.T) {
	t.Run("Requires Client ID", func(t *testing.T) {
		if _, err := NewSoundCloudService(shared.SoundCloudConfig{}, ""); err == nil {
			t.Error("expected error without client_id")
		}
	})

	t.Run("Search", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/tracks" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("client_id") != "cid" {
				t.Error("expected client_id query param")
			}
			if r.URL.Query().Get("q") != "hollow earth" {
				t.Errorf("unexpected query %q", r.URL.Query().Get("q"))
			}
			json.NewEncoder(w).Encode(soundcloudSearchResponse{
				Collection: []soundcloudTrack{{
					ID:            99,
					Title:         "Hollow Earth",
					User:          soundcloudUser{Username: "deep_medi"},
					PermalinkURL:  "https://soundcloud.com/deep_medi/hollow-earth",
					PlaybackCount: 1200,
				}},
			})
		}))
		defer server.Close()

		svc, err := NewSoundCloudService(shared.SoundCloudConfig{ClientID: "cid"}, server.URL)
		if err != nil {
			t.Fatal(err)
		}
		tracks, err := svc.SearchTracks(context.Background(), "hollow earth", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}
		got := tracks[0]
		if got.Platform != PlatformSoundCloud || got.ExternalID != "99" || got.Artist != "deep_medi" {
			t.Errorf("unexpected track: %+v", got)
		}
	})

	t.Run("Resolve URL", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/resolve" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(soundcloudTrack{ID: 7, Title: "Anti War Dub", User: soundcloudUser{Username: "digital_mystikz"}})
		}))
		defer server.Close()

		svc, _ := NewSoundCloudService(shared.SoundCloudConfig{ClientID: "cid"}, server.URL)
		info, err := svc.ResolveURL(context.Background(), "https://soundcloud.com/digital_mystikz/anti-war-dub")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info.Title != "Anti War Dub" {
			t.Errorf("unexpected track: %+v", info)
		}
	})

	t.Run("API Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		svc, _ := NewSoundCloudService(shared.SoundCloudConfig{ClientID: "cid"}, server.URL)
		if _, err := svc.SearchTracks(context.Background(), "x", 1); err == nil {
			t.Error("expected error on non-200 response")
		}
	})
}

func TestYouTubeService(t *testing.T) {
	t.Run("Requires API Key", func(t *testing.T) {
		if _, err := NewYouTubeService(shared.YouTubeConfig{}, ""); err == nil {
			t.Error("expected error without api_key")
		}
	})

	t.Run("Search Merges Statistics", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/search":
				w.Write([]byte(`{"items":[{"id":{"videoId":"dQw4w9WgXcQ"},"snippet":{"title":"Scary Monsters","channelTitle":"SkrillexVEVO"}}]}`))
			case "/videos":
				w.Write([]byte(`{"items":[{"id":"dQw4w9WgXcQ","statistics":{"viewCount":"1000","likeCount":"50"}}]}`))
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))
		defer server.Close()

		svc, err := NewYouTubeService(shared.YouTubeConfig{APIKey: "key"}, server.URL)
		if err != nil {
			t.Fatal(err)
		}
		tracks, err := svc.SearchTracks(context.Background(), "scary monsters", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}
		if tracks[0].PlayCount != 1000 || tracks[0].LikeCount != 50 {
			t.Errorf("statistics not merged: %+v", tracks[0])
		}
	})

	t.Run("Resolve Unknown Video", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"items":[]}`))
		}))
		defer server.Close()

		svc, _ := NewYouTubeService(shared.YouTubeConfig{APIKey: "key"}, server.URL)
		_, err := svc.ResolveURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
		if err == nil {
			t.Error("expected error for unknown video")
		}
	})

	t.Run("Resolve Bad URL", func(t *testing.T) {
		svc, _ := NewYouTubeService(shared.YouTubeConfig{APIKey: "key"}, "http://localhost:0")
		if _, err := svc.ResolveURL(context.Background(), "https://www.youtube.com/"); err == nil {
			t.Error("expected error for URL without video ID")
		}
	})
}

func TestVerifier(t *testing.T) {
	t.Run("Unknown Host", func(t *testing.T) {
		v := NewVerifier(nil, nil, nil, nil)
		if _, err := v.VerifyURL(context.Background(), "https://bandcamp.com/x"); err == nil {
			t.Error("expected error for unknown host")
		}
	})

	t.Run("Unconfigured Platform", func(t *testing.T) {
		v := NewVerifier(nil, nil, nil, nil)
		if _, err := v.VerifyURL(context.Background(), "https://soundcloud.com/x"); err == nil {
			t.Error("expected error for unconfigured platform")
		}
	})

	t.Run("Dispatches By Host", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(soundcloudTrack{ID: 1, Title: "Night"})
		}))
		defer server.Close()

		sc, _ := NewSoundCloudService(shared.SoundCloudConfig{ClientID: "cid"}, server.URL)
		v := NewVerifier(nil, nil, sc, nil)

		info, err := v.VerifyURL(context.Background(), "https://soundcloud.com/benga/night")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info.Platform != PlatformSoundCloud || info.Title != "Night" {
			t.Errorf("unexpected result: %+v", info)
		}
	})

	t.Run("Cross Platform Search", func(t *testing.T) {
		scServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(soundcloudSearchResponse{Collection: []soundcloudTrack{{ID: 1, Title: "Midnight Request Line"}}})
		}))
		defer scServer.Close()

		ytServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ytServer.Close()

		sc, _ := NewSoundCloudService(shared.SoundCloudConfig{ClientID: "cid"}, scServer.URL)
		yt, _ := NewYouTubeService(shared.YouTubeConfig{APIKey: "key"}, ytServer.URL)
		v := NewVerifier(shared.NewLogger(io.Discard), nil, sc, yt)

		results, err := v.CrossPlatformSearch(context.Background(), "midnight request line", 5)
		if err != nil {
			t.Fatalf("search should succeed when any platform answers, got %v", err)
		}
		if len(results[PlatformSoundCloud]) != 1 {
			t.Errorf("expected soundcloud results, got %+v", results)
		}
		if _, ok := results[PlatformYouTube]; ok {
			t.Error("failed platform must be omitted")
		}
	})

	t.Run("Cross Platform Search Dedupes Matches", func(t *testing.T) {
		scServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(soundcloudSearchResponse{Collection: []soundcloudTrack{
				{ID: 1, Title: "Midnight Request Line", User: soundcloudUser{Username: "Skream"}},
				{ID: 2, Title: "midnight  request line", User: soundcloudUser{Username: "skream"}},
				{ID: 3, Title: "Blue Notez", User: soundcloudUser{Username: "Skream"}},
			}})
		}))
		defer scServer.Close()

		sc, _ := NewSoundCloudService(shared.SoundCloudConfig{ClientID: "cid"}, scServer.URL)
		v := NewVerifier(shared.NewLogger(io.Discard), nil, sc, nil)

		results, err := v.CrossPlatformSearch(context.Background(), "skream", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tracks := results[PlatformSoundCloud]
		if len(tracks) != 2 {
			t.Fatalf("expected duplicates collapsed to 2 tracks, got %d: %+v", len(tracks), tracks)
		}
		if tracks[0].ExternalID != "1" || tracks[1].ExternalID != "3" {
			t.Errorf("expected first occurrences kept, got %+v", tracks)
		}
	})

	t.Run("No Platforms Configured", func(t *testing.T) {
		v := NewVerifier(nil, nil, nil, nil)
		if _, err := v.CrossPlatformSearch(context.Background(), "q", 1); err == nil {
			t.Error("expected error with no platforms")
		}
	})
}
