package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	OutputDir             string  `json:"output_dir"`
	Workers               int     `json:"workers"`
	DownloadMaxRetries    int     `json:"download_max_retries"`
	DownloadRetryCooldown float64 `json:"download_retry_cooldown"`
	DownloadRetryExponent float64 `json:"download_retry_exponent"`

	// Audio settings
	BitrateKbps      int    `json:"bitrate_kbps"`
	PreferredQuality string `json:"preferred_quality"`
	FFmpegPath       string `json:"ffmpeg_path"`

	// Artwork settings
	EmbedArtwork      bool   `json:"embed_artwork"`
	ArtworkMaxSize    int    `json:"artwork_max_size"`
	ArtworkPreference string `json:"artwork_preference"`

	// Matching settings. The weights control how candidates are scored;
	// they are configuration rather than constants because no single
	// weighting is canonical.
	TitleWeight    float64 `json:"title_weight"`
	DurationWeight float64 `json:"duration_weight"`
	ArtistWeight   float64 `json:"artist_weight"`
	MinMatchScore  float64 `json:"min_match_score"`

	// Catalog settings
	SearchRatePerSecond float64 `json:"search_rate_per_second"`
	SearchMaxRetries    int     `json:"search_max_retries"`

	// Playlist settings
	CreatePlaylist bool `json:"create_playlist"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		OutputDir:             "downloads",
		Workers:               3,
		DownloadMaxRetries:    3,
		DownloadRetryCooldown: 0.5,
		DownloadRetryExponent: 2.0,

		BitrateKbps:      320,
		PreferredQuality: "320kbps",
		FFmpegPath:       "ffmpeg",

		EmbedArtwork:      true,
		ArtworkMaxSize:    500,
		ArtworkPreference: "500x500",

		TitleWeight:    0.5,
		DurationWeight: 0.3,
		ArtistWeight:   0.2,
		MinMatchScore:  0.4,

		SearchRatePerSecond: 5,
		SearchMaxRetries:    2,

		CreatePlaylist: false,
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error: defaults are returned so the tool works
// out of the box.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks settings for values the pipeline cannot work with.
func (s *Settings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	if s.BitrateKbps <= 0 {
		return fmt.Errorf("bitrate_kbps must be positive, got %d", s.BitrateKbps)
	}
	if s.MinMatchScore < 0 || s.MinMatchScore > 1 {
		return fmt.Errorf("min_match_score must be in [0, 1], got %g", s.MinMatchScore)
	}
	total := s.TitleWeight + s.DurationWeight + s.ArtistWeight
	if total <= 0 {
		return fmt.Errorf("match weights must sum to a positive value, got %g", total)
	}
	return nil
}
