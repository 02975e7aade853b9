package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/mploader/internal/audio"
	"github.com/handiism/mploader/internal/config"
	ioutils "github.com/handiism/mploader/internal/io"
	"github.com/handiism/mploader/internal/model"
	"github.com/handiism/mploader/internal/normalize"
)

// MetadataSource resolves a reference URL into a flat list of items.
type MetadataSource interface {
	ResolveItems(ctx context.Context, rawURL string) ([]model.SourceItem, error)
}

// Matcher selects the best catalog candidate for a normalized query.
type Matcher interface {
	Match(ctx context.Context, query model.NormalizedQuery) (model.MatchCandidate, error)
}

// TrackFetcher materializes a matched candidate at a destination path.
type TrackFetcher interface {
	Fetch(ctx context.Context, candidate model.MatchCandidate, destPath string) (model.TrackDetails, error)
}

// Manager coordinates one download run end to end.
type Manager struct {
	settings *config.Settings
	source   MetadataSource
	matcher  Matcher
	fetcher  TrackFetcher
	playlist *audio.PlaylistCreator
	logger   *log.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

// NewManager creates a Manager over the given collaborators.
func NewManager(settings *config.Settings, source MetadataSource, matcher Matcher, fetcher TrackFetcher, logger *log.Logger) *Manager {
	return &Manager{
		settings: settings,
		source:   source,
		matcher:  matcher,
		fetcher:  fetcher,
		playlist: audio.NewPlaylistCreator(true),
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Cancel requests a graceful stop. Items that have not reached the fetch
// stage finish as cancelled; in-flight fetches run to completion. Safe to
// call from any goroutine, any number of times.
func (m *Manager) Cancel() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// Run resolves sourceURL and processes every resulting item through the
// worker pool.
//
// The returned error is non-nil only when the source itself cannot be
// resolved or the output directory cannot be prepared; per-item failures
// are reported in the summary instead. Every resolved item is accounted
// for by exactly one outcome.
func (m *Manager) Run(ctx context.Context, sourceURL string) (model.RunSummary, error) {
	if err := ioutils.EnsureDir(m.settings.OutputDir); err != nil {
		return model.RunSummary{}, fmt.Errorf("preparing output directory: %w", err)
	}

	items, err := m.source.ResolveItems(ctx, sourceURL)
	if err != nil {
		return model.RunSummary{}, err
	}
	m.logger.Info("resolved source", "items", len(items))

	ledger, err := NewLedger(m.settings.OutputDir)
	if err != nil {
		return model.RunSummary{}, err
	}

	// runCtx governs the pre-fetch stages and is cancelled by Cancel.
	// Fetches run under the parent ctx, so a graceful stop lets them
	// finish while cancelling ctx itself still aborts everything.
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	go func() {
		select {
		case <-m.stop:
			cancelRun()
		case <-runCtx.Done():
		}
	}()

	outcomes := make([]model.TrackOutcome, len(items))
	entries := make([]audio.PlaylistEntry, len(items))

	var g errgroup.Group
	g.SetLimit(max(m.settings.Workers, 1))
	for i, item := range items {
		g.Go(func() error {
			outcomes[i], entries[i] = m.processItem(ctx, runCtx, ledger, item)
			return nil
		})
	}
	_ = g.Wait()

	summary := model.NewRunSummary(outcomes)
	m.logger.Info("run finished",
		"total", summary.Total,
		"downloaded", summary.Downloaded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"cancelled", summary.Cancelled)

	if m.settings.CreatePlaylist && summary.Downloaded > 0 {
		m.writePlaylist(entries)
	}

	return summary, nil
}

// processItem walks one item through the pipeline and returns its
// terminal outcome. The playlist entry is zero unless the item was
// downloaded.
func (m *Manager) processItem(ctx, runCtx context.Context, ledger *Ledger, item model.SourceItem) (model.TrackOutcome, audio.PlaylistEntry) {
	if runCtx.Err() != nil {
		return model.Cancelled(item), audio.PlaylistEntry{}
	}

	m.logger.Debug("processing", "stage", StageNormalizing, "title", item.RawTitle)
	query := normalize.Normalize(item.RawTitle, item.Uploader)
	query.DurationSeconds = item.DurationSeconds

	if runCtx.Err() != nil {
		return model.Cancelled(item), audio.PlaylistEntry{}
	}

	m.logger.Debug("processing", "stage", StageMatching, "query", query.SearchTitle)
	candidate, err := m.matcher.Match(runCtx, query)
	if err != nil {
		if runCtx.Err() != nil {
			return model.Cancelled(item), audio.PlaylistEntry{}
		}
		m.logger.Warn("no match", "title", item.RawTitle, "err", err)
		return model.Failed(item, model.ErrKindNoMatch, err.Error()), audio.PlaylistEntry{}
	}

	fileName := model.DestinationFileName(candidate.Title, candidate.Artist)
	destPath := filepath.Join(m.settings.OutputDir, fileName)

	m.logger.Debug("processing", "stage", StageSkipCheck, "file", fileName)
	switch ledger.Claim(fileName) {
	case ClaimOnDisk:
		m.logger.Info("skipping, already downloaded", "file", fileName)
		return model.Skipped(item, destPath, "already downloaded"), audio.PlaylistEntry{}
	case ClaimInFlight:
		m.logger.Info("skipping, duplicate in this run", "file", fileName)
		return model.Skipped(item, destPath, "duplicate of another item in this run"), audio.PlaylistEntry{}
	}

	if runCtx.Err() != nil {
		return model.Cancelled(item), audio.PlaylistEntry{}
	}

	m.logger.Debug("processing", "stage", StageFetching, "file", fileName)
	details, err := m.fetcher.Fetch(ctx, candidate, destPath)
	if err != nil {
		if ctx.Err() != nil {
			return model.Cancelled(item), audio.PlaylistEntry{}
		}
		kind := model.ErrKindStream
		var fe *FetchError
		if errors.As(err, &fe) {
			kind = fe.Kind
		}
		m.logger.Error("fetch failed", "title", candidate.Title, "err", err)
		return model.Failed(item, kind, err.Error()), audio.PlaylistEntry{}
	}

	return model.Downloaded(item, destPath), audio.PlaylistEntry{
		FileName:        fileName,
		Title:           details.Title,
		Artist:          details.Artist,
		DurationSeconds: details.DurationSeconds,
	}
}

// writePlaylist emits an M3U covering the files downloaded this run, in
// source order. Playlist trouble never fails the run.
func (m *Manager) writePlaylist(entries []audio.PlaylistEntry) {
	present := make([]audio.PlaylistEntry, 0, len(entries))
	for _, e := range entries {
		if e.FileName != "" {
			present = append(present, e)
		}
	}

	path := filepath.Join(m.settings.OutputDir, "playlist.m3u")
	content := m.playlist.CreateM3U(present)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		m.logger.Warn("writing playlist failed", "err", err)
		return
	}
	m.logger.Info("wrote playlist", "path", path, "entries", len(present))
}
