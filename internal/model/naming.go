package model

import (
	"regexp"
	"strings"
)

// maxFileNameLength caps destination names so long catalog titles cannot
// produce paths that break on Windows (MAX_PATH).
const maxFileNameLength = 200

var invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// DestinationFileName computes the deterministic output filename for a
// matched track: "{title} - {artist}.mp3" with filesystem-unsafe
// characters removed and the name capped at 200 characters.
//
// Two distinct source items that match the same title/artist pair produce
// the same name; the download ledger treats the second as already
// downloaded rather than overwriting.
//
// Example:
//
//	DestinationFileName("Shape of You", "Ed Sheeran")
//	// "Shape of You - Ed Sheeran.mp3"
func DestinationFileName(title, artist string) string {
	if title == "" {
		title = "Unknown"
	}
	if artist == "" {
		artist = "Unknown"
	}

	name := title + " - " + artist
	name = invalidFileChars.ReplaceAllString(name, "")
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	if len(name) > maxFileNameLength {
		name = strings.TrimSpace(name[:maxFileNameLength])
	}
	return name + ".mp3"
}
