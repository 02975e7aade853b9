package download

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/handiism/mploader/internal/config"
	httpx "github.com/handiism/mploader/internal/http"
	ioutils "github.com/handiism/mploader/internal/io"
	"github.com/handiism/mploader/internal/model"
)

// Catalog provides per-track lookups of the full song record.
type Catalog interface {
	Lookup(ctx context.Context, catalogID string) (model.TrackDetails, error)
}

// Transcoder converts a downloaded stream into an MP3.
type Transcoder interface {
	Transcode(ctx context.Context, src, dst string, bitrateKbps int) error
}

// TagWriter embeds metadata into a finished MP3.
type TagWriter interface {
	WriteTags(path string, fields model.TagFields, artwork []byte) error
}

// FetchError classifies which pipeline stage failed.
type FetchError struct {
	Kind model.ErrorKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func fetchErr(kind model.ErrorKind, format string, args ...any) *FetchError {
	return &FetchError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Fetcher materializes one matched candidate as a tagged MP3 on disk.
//
// The pipeline is download, transcode, tag, then a single atomic move to
// the destination. All intermediate files use hidden scratch names in
// the output directory so a crash or failure never leaves a partial file
// under a destination name.
type Fetcher struct {
	settings   *config.Settings
	http       *httpx.Client
	catalog    Catalog
	transcoder Transcoder
	tagger     TagWriter
	logger     *log.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(settings *config.Settings, httpClient *httpx.Client, catalog Catalog, transcoder Transcoder, tagger TagWriter, logger *log.Logger) *Fetcher {
	return &Fetcher{
		settings:   settings,
		http:       httpClient,
		catalog:    catalog,
		transcoder: transcoder,
		tagger:     tagger,
		logger:     logger,
	}
}

// Fetch downloads, converts and tags the candidate, then moves the result
// to destPath. The returned details carry the catalog's full record for
// reporting and playlist generation.
//
// Errors are returned as *FetchError so callers can classify the failed
// stage.
func (f *Fetcher) Fetch(ctx context.Context, candidate model.MatchCandidate, destPath string) (model.TrackDetails, error) {
	details, err := f.catalog.Lookup(ctx, candidate.CatalogID)
	if err != nil {
		return model.TrackDetails{}, fetchErr(model.ErrKindStream, "looking up track: %w", err)
	}

	streamURL := details.BestDownloadURL(f.settings.PreferredQuality)
	if streamURL == "" {
		return model.TrackDetails{}, fetchErr(model.ErrKindStream, "track %s has no download variants", candidate.CatalogID)
	}

	dir := filepath.Dir(destPath)
	scratch := uuid.NewString()
	rawPath := filepath.Join(dir, "."+scratch+".stream")
	mp3Path := filepath.Join(dir, "."+scratch+".mp3")
	defer ioutils.RemoveQuiet(rawPath, mp3Path)

	if err := f.downloadStream(ctx, streamURL, rawPath); err != nil {
		return details, fetchErr(model.ErrKindStream, "downloading stream: %w", err)
	}

	if err := f.transcoder.Transcode(ctx, rawPath, mp3Path, f.settings.BitrateKbps); err != nil {
		return details, fetchErr(model.ErrKindTranscode, "converting to %d kbps: %w", f.settings.BitrateKbps, err)
	}

	artwork := f.fetchArtwork(ctx, details)
	if err := f.tagger.WriteTags(mp3Path, details.Tags(), artwork); err != nil {
		return details, fetchErr(model.ErrKindTagWrite, "writing tags: %w", err)
	}

	if err := ioutils.MoveFile(mp3Path, destPath); err != nil {
		return details, fetchErr(model.ErrKindTagWrite, "moving into place: %w", err)
	}

	f.logger.Info("downloaded", "file", filepath.Base(destPath))
	return details, nil
}

// downloadStream fetches the audio stream with bounded retries and an
// exponential cooldown between attempts.
func (f *Fetcher) downloadStream(ctx context.Context, url, destPath string) error {
	var err error
	for tries := 0; tries < max(f.settings.DownloadMaxRetries, 1); tries++ {
		err = f.http.DownloadFile(ctx, url, destPath, nil)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
		f.logger.Warn("stream download failed, retrying", "attempt", tries+1, "err", err)
		f.waitForRetry(ctx, tries)
	}
	return err
}

// fetchArtwork downloads and prepares cover art. Artwork is decoration:
// any failure logs a warning and tagging proceeds without a picture.
func (f *Fetcher) fetchArtwork(ctx context.Context, details model.TrackDetails) []byte {
	if !f.settings.EmbedArtwork || details.ArtworkURL == "" {
		return nil
	}

	raw, err := f.http.DownloadBytes(ctx, details.ArtworkURL)
	if err != nil {
		f.logger.Warn("artwork download failed", "track", details.Title, "err", err)
		return nil
	}

	prepared, err := ioutils.PrepareArtwork(raw, f.settings.ArtworkMaxSize)
	if err != nil {
		f.logger.Warn("artwork unusable", "track", details.Title, "err", err)
		return nil
	}
	return prepared
}

func (f *Fetcher) waitForRetry(ctx context.Context, tries int) {
	cooldown := f.settings.DownloadRetryCooldown * math.Pow(f.settings.DownloadRetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}
