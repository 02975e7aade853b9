package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ytget/ytdlp/v2"

	httpx "github.com/handiism/mploader/internal/http"
	"github.com/handiism/mploader/internal/model"
)

// ErrSourceUnavailable is returned when the reference cannot be resolved
// at all: an unparseable URL, an unreachable platform, or a playlist that
// yields nothing. It aborts the whole run, unlike per-track failures.
var ErrSourceUnavailable = errors.New("source unavailable")

const defaultOEmbedBaseURL = "https://www.youtube.com/oembed"

// Options configures a Resolver.
type Options struct {
	// OEmbedBaseURL overrides the oEmbed endpoint used for single-video
	// metadata; empty means the public endpoint.
	OEmbedBaseURL string
}

// Resolver turns a video or playlist URL into source items.
type Resolver struct {
	http      *httpx.Client
	oembedURL string
	logger    *log.Logger
}

// NewResolver creates a Resolver.
func NewResolver(httpClient *httpx.Client, opts Options, logger *log.Logger) *Resolver {
	oembedURL := opts.OEmbedBaseURL
	if oembedURL == "" {
		oembedURL = defaultOEmbedBaseURL
	}
	return &Resolver{http: httpClient, oembedURL: oembedURL, logger: logger}
}

// ResolveItems resolves a reference into a flat, ordered list of items.
//
// A URL carrying a list parameter is treated as a playlist and expanded
// one level deep; anything else is treated as a single video. Sequence
// indexes follow the playlist order, or 0 for a single video.
func (r *Resolver) ResolveItems(ctx context.Context, rawURL string) ([]model.SourceItem, error) {
	if playlistID := extractPlaylistID(rawURL); playlistID != "" {
		return r.resolvePlaylist(ctx, playlistID)
	}

	videoID := extractVideoID(rawURL)
	if videoID == "" {
		return nil, fmt.Errorf("%w: unrecognized reference %q", ErrSourceUnavailable, rawURL)
	}
	return r.resolveVideo(ctx, videoID)
}

func (r *Resolver) resolvePlaylist(ctx context.Context, playlistID string) ([]model.SourceItem, error) {
	r.logger.Debug("expanding playlist", "playlist", playlistID)

	d := ytdlp.New()
	entries, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: listing playlist %s: %v", ErrSourceUnavailable, playlistID, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: playlist %s has no items", ErrSourceUnavailable, playlistID)
	}

	items := make([]model.SourceItem, 0, len(entries))
	for _, e := range entries {
		if e.VideoID == "" {
			continue
		}
		items = append(items, model.SourceItem{
			RawTitle:      e.Title,
			SourceID:      e.VideoID,
			SequenceIndex: len(items),
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: playlist %s has no usable items", ErrSourceUnavailable, playlistID)
	}
	return items, nil
}

// oembedResponse is the subset of the oEmbed document the resolver reads.
type oembedResponse struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

func (r *Resolver) resolveVideo(ctx context.Context, videoID string) ([]model.SourceItem, error) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID
	u := r.oembedURL + "?format=json&url=" + url.QueryEscape(watchURL)

	var resp oembedResponse
	if err := r.http.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("%w: fetching metadata for video %s: %v", ErrSourceUnavailable, videoID, err)
	}
	if resp.Title == "" {
		return nil, fmt.Errorf("%w: video %s has no title", ErrSourceUnavailable, videoID)
	}

	return []model.SourceItem{{
		RawTitle: resp.Title,
		Uploader: resp.AuthorName,
		SourceID: videoID,
	}}, nil
}

// extractPlaylistID pulls the playlist ID out of a URL, or returns ""
// when the URL does not reference a playlist.
func extractPlaylistID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("list")
}

// extractVideoID pulls the video ID out of the URL forms in common use:
// watch?v=, youtu.be/, shorts/ and embed/ links, plus a bare ID.
func extractVideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	if id := u.Query().Get("v"); id != "" {
		return id
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	path := strings.Trim(u.Path, "/")
	switch {
	case host == "youtu.be" && path != "":
		return firstSegment(path)
	case strings.HasPrefix(path, "shorts/"):
		return firstSegment(strings.TrimPrefix(path, "shorts/"))
	case strings.HasPrefix(path, "embed/"):
		return firstSegment(strings.TrimPrefix(path, "embed/"))
	}

	// A bare ID has no scheme, no host and no separators.
	if u.Scheme == "" && u.Host == "" && path != "" && !strings.ContainsAny(path, "/?.") {
		return path
	}
	return ""
}

func firstSegment(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
