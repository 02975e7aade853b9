package youtube

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	httpx "github.com/handiism/mploader/internal/http"
)

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/playlist?list=PLabc123", "PLabc123"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabc123&index=2", "PLabc123"},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ", ""},
		{"https://youtu.be/dQw4w9WgXcQ", ""},
		{"not a url at all ::", ""},
	}

	for _, tt := range tests {
		if got := extractPlaylistID(tt.url); got != tt.want {
			t.Errorf("extractPlaylistID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/feed/subscriptions", ""},
		{"https://example.com/watch", ""},
	}

	for _, tt := range tests {
		if got := extractVideoID(tt.url); got != tt.want {
			t.Errorf("extractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestResolveItems_SingleVideo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("url"); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
			t.Errorf("oembed url param = %q", got)
		}
		w.Write([]byte(`{"title": "Rick Astley - Never Gonna Give You Up (Official Video)", "author_name": "Rick Astley"}`))
	}))
	t.Cleanup(srv.Close)

	r := NewResolver(httpx.NewClient(), Options{OEmbedBaseURL: srv.URL}, log.New(io.Discard))
	items, err := r.ResolveItems(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("ResolveItems() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	item := items[0]
	if item.RawTitle != "Rick Astley - Never Gonna Give You Up (Official Video)" {
		t.Errorf("RawTitle = %q", item.RawTitle)
	}
	if item.Uploader != "Rick Astley" {
		t.Errorf("Uploader = %q", item.Uploader)
	}
	if item.SourceID != "dQw4w9WgXcQ" || item.SequenceIndex != 0 {
		t.Errorf("SourceID/SequenceIndex = %q/%d", item.SourceID, item.SequenceIndex)
	}
}

func TestResolveItems_UnrecognizedReference(t *testing.T) {
	r := NewResolver(httpx.NewClient(), Options{}, log.New(io.Discard))
	_, err := r.ResolveItems(context.Background(), "https://example.com/not-a-video")
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("ResolveItems() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestResolveItems_MetadataFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	r := NewResolver(httpx.NewClient(), Options{OEmbedBaseURL: srv.URL}, log.New(io.Discard))
	_, err := r.ResolveItems(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("ResolveItems() error = %v, want ErrSourceUnavailable", err)
	}
}
