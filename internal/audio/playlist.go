package audio

import (
	"fmt"
	"strings"
)

// PlaylistEntry is one track reference in a generated playlist.
type PlaylistEntry struct {
	// FileName is the track's file name relative to the playlist file.
	FileName string

	Title           string
	Artist          string
	DurationSeconds int
}

// PlaylistCreator generates M3U playlists for the files a run produced.
//
// Entries use relative paths, assuming the playlist file sits in the
// same directory as the tracks.
//
// Example:
//
//	creator := NewPlaylistCreator(true)
//	content := creator.CreateM3U(entries)
//	os.WriteFile(filepath.Join(outputDir, "playlist.m3u"), []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:233,Ed Sheeran - Shape of You
//	// Shape of You - Ed Sheeran.mp3
type PlaylistCreator struct {
	extended bool // include #EXTINF lines with duration/title
}

// NewPlaylistCreator creates a PlaylistCreator.
//
// extended controls whether #EXTINF lines are emitted.
func NewPlaylistCreator(extended bool) *PlaylistCreator {
	return &PlaylistCreator{extended: extended}
}

// CreateM3U generates M3U playlist content for the entries, in order.
func (p *PlaylistCreator) CreateM3U(entries []PlaylistEntry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s - %s\n", e.DurationSeconds, e.Artist, e.Title))
		}
		sb.WriteString(e.FileName + "\n")
	}

	return sb.String()
}
