package model

// SourceItem is one video/playlist entry to be resolved and downloaded.
//
// Items are produced once by the metadata source and are immutable
// afterwards; SequenceIndex preserves the original playlist order so the
// final report can be presented deterministically regardless of worker
// scheduling.
type SourceItem struct {
	// RawTitle is the video title exactly as reported by the platform.
	RawTitle string

	// Uploader is the channel/uploader name, used as an artist hint.
	Uploader string

	// SourceID is the platform's identifier for the video.
	SourceID string

	// DurationSeconds is the video length when the platform reported one,
	// 0 otherwise. Used only to sharpen catalog matching.
	DurationSeconds int

	// SequenceIndex is the zero-based position within the source playlist.
	SequenceIndex int
}

// NormalizedQuery is the search-ready form of a SourceItem.
//
// ArtistHints are ordered by priority: an extracted featuring-artist first
// (when present), then the cleaned uploader name. Either may be empty.
type NormalizedQuery struct {
	SearchTitle string
	ArtistHints []string

	// DurationSeconds is copied from the source item, 0 when unknown.
	DurationSeconds int
}
