package platforms

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lowendtheory/dubplate/internal/shared"
	"golang.org/x/time/rate"
)

// Verifier routes track URLs to the platform that can resolve them and fans
// search queries out across every configured platform. Platforms with
// missing credentials are simply absent; verification degrades instead of
// failing outright.
type Verifier struct {
	resolvers map[Platform]Resolver
	searchers []Searcher
	limiter   *rate.Limiter
	logger    *log.Logger
}

// NewVerifier builds a Verifier from whichever platform services are
// configured. Pass nil for a platform that has no credentials.
func NewVerifier(logger *log.Logger, spotify *SpotifyService, soundcloud *SoundCloudService, youtube *YouTubeService) *Verifier {
	v := &Verifier{
		resolvers: make(map[Platform]Resolver),
		limiter:   rate.NewLimiter(rate.Limit(5), 5),
		logger:    logger,
	}
	if spotify != nil {
		v.register(spotify, spotify)
	}
	if soundcloud != nil {
		v.register(soundcloud, soundcloud)
	}
	if youtube != nil {
		v.register(youtube, youtube)
	}
	return v
}

func (v *Verifier) register(r Resolver, s Searcher) {
	v.resolvers[r.Name()] = r
	v.searchers = append(v.searchers, s)
}

// Platforms lists the configured platforms.
func (v *Verifier) Platforms() []Platform {
	platforms := make([]Platform, 0, len(v.searchers))
	for _, s := range v.searchers {
		platforms = append(platforms, s.Name())
	}
	return platforms
}

// detectPlatform maps a URL's host to a platform.
func detectPlatform(trackURL string) (Platform, bool) {
	lower := strings.ToLower(trackURL)
	switch {
	case strings.Contains(lower, "spotify.com"):
		return PlatformSpotify, true
	case strings.Contains(lower, "soundcloud.com"):
		return PlatformSoundCloud, true
	case strings.Contains(lower, "youtube.com"), strings.Contains(lower, "youtu.be"):
		return PlatformYouTube, true
	default:
		return "", false
	}
}

// VerifyURL resolves a track URL through the platform its host belongs to.
func (v *Verifier) VerifyURL(ctx context.Context, trackURL string) (*TrackInfo, error) {
	platform, ok := detectPlatform(trackURL)
	if !ok {
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownPlatform, trackURL)
	}
	resolver, ok := v.resolvers[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not configured", shared.ErrMissingCredentials, platform)
	}
	return resolver.ResolveURL(ctx, trackURL)
}

// CrossPlatformSearch runs the query on every configured platform
// concurrently and returns results grouped by platform. A platform that
// fails is logged and omitted; the search fails only when no platform
// returns anything.
func (v *Verifier) CrossPlatformSearch(ctx context.Context, query string, limit int) (map[Platform][]TrackInfo, error) {
	if len(v.searchers) == 0 {
		return nil, fmt.Errorf("%w: no platforms configured", shared.ErrMissingCredentials)
	}

	type outcome struct {
		platform Platform
		tracks   []TrackInfo
		err      error
	}
	ch := make(chan outcome, len(v.searchers))

	var wg sync.WaitGroup
	for _, s := range v.searchers {
		wg.Add(1)
		go func(s Searcher) {
			defer wg.Done()
			if err := v.limiter.Wait(ctx); err != nil {
				ch <- outcome{platform: s.Name(), err: err}
				return
			}
			tracks, err := s.SearchTracks(ctx, query, limit)
			ch <- outcome{platform: s.Name(), tracks: tracks, err: err}
		}(s)
	}
	wg.Wait()
	close(ch)

	results := make(map[Platform][]TrackInfo)
	var lastErr error
	for out := range ch {
		if out.err != nil {
			lastErr = out.err
			if v.logger != nil {
				v.logger.Warn("platform search failed", "platform", out.platform, "error", out.err)
			}
			continue
		}
		results[out.platform] = dedupeTracks(out.tracks)
	}
	if len(results) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return results, nil
}

// dedupeTracks drops repeated entries for the same normalized title and
// artist, keeping the first occurrence.
func dedupeTracks(tracks []TrackInfo) []TrackInfo {
	seen := make(map[string]bool, len(tracks))
	deduped := tracks[:0]
	for _, track := range tracks {
		key := shared.NormalizeTrackKey(track.Title, track.Artist)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, track)
	}
	return deduped
}
