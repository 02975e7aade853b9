package download

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/handiism/mploader/internal/config"
	httpx "github.com/handiism/mploader/internal/http"
	"github.com/handiism/mploader/internal/model"
)

type fakeCatalog struct {
	details model.TrackDetails
	err     error
}

func (f *fakeCatalog) Lookup(ctx context.Context, catalogID string) (model.TrackDetails, error) {
	return f.details, f.err
}

// fakeTranscoder copies src to dst with a marker prefix so tests can tell
// transcoded output from the raw stream.
type fakeTranscoder struct {
	err error
}

func (f *fakeTranscoder) Transcode(ctx context.Context, src, dst string, bitrateKbps int) error {
	if f.err != nil {
		return f.err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, append([]byte("mp3:"), data...), 0644)
}

type fakeTagger struct {
	fields model.TagFields
	err    error
}

func (f *fakeTagger) WriteTags(path string, fields model.TagFields, artwork []byte) error {
	f.fields = fields
	return f.err
}

func fetcherFixture(t *testing.T, catalog Catalog, transcoder Transcoder, tagger TagWriter) (*Fetcher, *config.Settings) {
	t.Helper()
	settings := config.DefaultSettings()
	settings.OutputDir = t.TempDir()
	settings.DownloadMaxRetries = 2
	settings.DownloadRetryCooldown = 0.01
	settings.EmbedArtwork = false
	f := NewFetcher(settings, httpx.NewClient(), catalog, transcoder, tagger, log.New(io.Discard))
	return f, settings
}

func streamServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func detailsFor(streamURL string) model.TrackDetails {
	return model.TrackDetails{
		CatalogID:       "s1",
		Title:           "Shape of You",
		Artist:          "Ed Sheeran",
		DurationSeconds: 233,
		DownloadURLs:    []model.DownloadVariant{{Quality: "320kbps", URL: streamURL}},
	}
}

func scratchFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var hidden []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			hidden = append(hidden, e.Name())
		}
	}
	return hidden
}

func TestFetch(t *testing.T) {
	srv := streamServer(t, "aac-stream-bytes")
	tagger := &fakeTagger{}
	f, settings := fetcherFixture(t, &fakeCatalog{details: detailsFor(srv.URL)}, &fakeTranscoder{}, tagger)

	dest := filepath.Join(settings.OutputDir, "Shape of You - Ed Sheeran.mp3")
	details, err := f.Fetch(context.Background(), model.MatchCandidate{CatalogID: "s1"}, dest)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("destination not written: %v", err)
	}
	if string(data) != "mp3:aac-stream-bytes" {
		t.Errorf("destination content = %q, want transcoded stream", data)
	}
	if details.Title != "Shape of You" {
		t.Errorf("details.Title = %q", details.Title)
	}
	if tagger.fields.Title != "Shape of You" {
		t.Errorf("tagger received fields %+v", tagger.fields)
	}
	if hidden := scratchFiles(t, settings.OutputDir); len(hidden) != 0 {
		t.Errorf("scratch files left behind: %v", hidden)
	}
}

func TestFetch_RetriesStream(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "flaky", http.StatusBadGateway)
			return
		}
		io.WriteString(w, "aac-stream-bytes")
	}))
	t.Cleanup(srv.Close)

	f, settings := fetcherFixture(t, &fakeCatalog{details: detailsFor(srv.URL)}, &fakeTranscoder{}, &fakeTagger{})
	dest := filepath.Join(settings.OutputDir, "out.mp3")

	if _, err := f.Fetch(context.Background(), model.MatchCandidate{CatalogID: "s1"}, dest); err != nil {
		t.Fatalf("Fetch() after retry error = %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("stream server saw %d calls, want 2", calls.Load())
	}
}

func TestFetch_ErrorClassification(t *testing.T) {
	srv := streamServer(t, "aac-stream-bytes")

	tests := []struct {
		name       string
		catalog    Catalog
		transcoder Transcoder
		tagger     TagWriter
		wantKind   model.ErrorKind
	}{
		{
			name:       "lookup failure",
			catalog:    &fakeCatalog{err: errors.New("api down")},
			transcoder: &fakeTranscoder{},
			tagger:     &fakeTagger{},
			wantKind:   model.ErrKindStream,
		},
		{
			name:       "no download variants",
			catalog:    &fakeCatalog{details: model.TrackDetails{CatalogID: "s1"}},
			transcoder: &fakeTranscoder{},
			tagger:     &fakeTagger{},
			wantKind:   model.ErrKindStream,
		},
		{
			name:       "transcode failure",
			catalog:    &fakeCatalog{details: detailsFor(srv.URL)},
			transcoder: &fakeTranscoder{err: errors.New("ffmpeg exploded")},
			tagger:     &fakeTagger{},
			wantKind:   model.ErrKindTranscode,
		},
		{
			name:       "tag failure",
			catalog:    &fakeCatalog{details: detailsFor(srv.URL)},
			transcoder: &fakeTranscoder{},
			tagger:     &fakeTagger{err: errors.New("bad frame")},
			wantKind:   model.ErrKindTagWrite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, settings := fetcherFixture(t, tt.catalog, tt.transcoder, tt.tagger)
			dest := filepath.Join(settings.OutputDir, "out.mp3")

			_, err := f.Fetch(context.Background(), model.MatchCandidate{CatalogID: "s1"}, dest)
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("Fetch() error = %v, want *FetchError", err)
			}
			if fe.Kind != tt.wantKind {
				t.Errorf("FetchError.Kind = %q, want %q", fe.Kind, tt.wantKind)
			}
			if _, statErr := os.Stat(dest); statErr == nil {
				t.Error("destination exists after failed fetch")
			}
			if hidden := scratchFiles(t, settings.OutputDir); len(hidden) != 0 {
				t.Errorf("scratch files left behind: %v", hidden)
			}
		})
	}
}
