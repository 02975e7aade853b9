package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/handiism/mploader/internal/audio"
	"github.com/handiism/mploader/internal/config"
	"github.com/handiism/mploader/internal/download"
	httpx "github.com/handiism/mploader/internal/http"
	"github.com/handiism/mploader/internal/match"
	"github.com/handiism/mploader/internal/model"
	"github.com/handiism/mploader/internal/saavn"
	"github.com/handiism/mploader/internal/youtube"
)

// Exit codes: 0 everything downloaded or skipped, 1 fatal or total
// failure, 2 partial failure, 130 cancelled.
const (
	exitOK        = 0
	exitFailure   = 1
	exitPartial   = 2
	exitCancelled = 130
)

func main() {
	var (
		urlFlag      = flag.String("url", "", "YouTube video or playlist URL")
		outputFlag   = flag.String("output", "", "Output directory (overrides config)")
		workersFlag  = flag.Int("workers", 0, "Concurrent downloads (overrides config)")
		configFlag   = flag.String("config", "", "Path to config file")
		playlistFlag = flag.Bool("playlist", false, "Write an M3U playlist for the downloaded files")
		verboseFlag  = flag.Bool("verbose", false, "Show debug output")
	)

	flag.Parse()

	sourceURL := *urlFlag
	if sourceURL == "" && flag.NArg() > 0 {
		sourceURL = flag.Arg(0)
	}
	if sourceURL == "" {
		fmt.Println("mploader - download music matching YouTube videos and playlists")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  mploader -url <URL> [options]")
		fmt.Println("  mploader <URL> [options]")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(exitFailure)
	}

	logger := log.New(os.Stderr)
	if *verboseFlag {
		logger.SetLevel(log.DebugLevel)
	}

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			logger.Fatal("loading config", "err", err)
		}
	}
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *workersFlag > 0 {
		settings.Workers = *workersFlag
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}
	if err := settings.Validate(); err != nil {
		logger.Fatal("invalid settings", "err", err)
	}

	transcoder := audio.NewTranscoder(settings.FFmpegPath, logger)
	if err := transcoder.Available(); err != nil {
		logger.Fatal("ffmpeg is required for MP3 conversion", "err", err)
	}

	httpClient := httpx.NewClient()
	catalog := saavn.NewClient(httpClient, saavn.Options{
		RatePerSecond:     settings.SearchRatePerSecond,
		MaxRetries:        settings.SearchMaxRetries,
		ArtworkPreference: settings.ArtworkPreference,
	}, logger)
	matcher := match.NewMatcher(catalog, match.Weights{
		Title:    settings.TitleWeight,
		Duration: settings.DurationWeight,
		Artist:   settings.ArtistWeight,
	}, settings.MinMatchScore)
	fetcher := download.NewFetcher(settings, httpClient, catalog, transcoder, audio.NewTagger(), logger)
	resolver := youtube.NewResolver(httpClient, youtube.Options{}, logger)

	manager := download.NewManager(settings, resolver, matcher, fetcher, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First interrupt stops gracefully, letting in-flight downloads
	// finish; a second one aborts outright.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("interrupted, finishing in-flight downloads (interrupt again to abort)")
		manager.Cancel()
		<-sigCh
		logger.Warn("aborting")
		cancel()
	}()

	summary, err := manager.Run(ctx, sourceURL)
	if err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(exitFailure)
	}

	printSummary(summary)
	os.Exit(exitCode(summary))
}

// printSummary writes the per-run report to stdout: counts first, then
// the items that need attention.
func printSummary(s model.RunSummary) {
	fmt.Println()
	fmt.Printf("Finished: %d downloaded, %d skipped, %d failed, %d cancelled (of %d)\n",
		s.Downloaded, s.Skipped, s.Failed, s.Cancelled, s.Total)

	for _, o := range s.Outcomes {
		switch o.Kind {
		case model.OutcomeFailed:
			fmt.Printf("  failed    %s (%s: %s)\n", o.Item.RawTitle, o.ErrorKind, o.Message)
		case model.OutcomeCancelled:
			fmt.Printf("  cancelled %s\n", o.Item.RawTitle)
		}
	}
}

func exitCode(s model.RunSummary) int {
	switch {
	case s.Cancelled > 0:
		return exitCancelled
	case s.AllSucceeded():
		return exitOK
	case s.NoneSucceeded():
		return exitFailure
	default:
		return exitPartial
	}
}
