// Package normalize cleans raw video titles into search-ready catalog
// queries.
//
// Video titles carry decorations that hurt catalog search relevance:
// "[Official Video]", "(Lyrics)", quality tags like HD/4K, release-type
// markers like (Remix) or (Live), and trailing "| Channel Name" segments.
// Normalize strips all of them and additionally extracts a featuring
// artist from "ft./feat." segments to use as a matching hint:
//
//	q := normalize.Normalize("Shape of You [Official Video] ft. Stormzy", "Ed Sheeran")
//	// q.SearchTitle = "Shape of You"
//	// q.ArtistHints = ["Stormzy", "Ed Sheeran"]
//
// Normalize is a pure function with no failure mode: when cleaning removes
// everything, the raw title is returned unchanged.
package normalize

import (
	"regexp"
	"strings"

	"github.com/handiism/mploader/internal/model"
)

// noisePatterns strip common title decorations. All case-insensitive.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\(official.*?\)`),
	regexp.MustCompile(`(?i)\[official.*?\]`),
	regexp.MustCompile(`(?i)\(audio\)`),
	regexp.MustCompile(`(?i)\[audio\]`),
	regexp.MustCompile(`(?i)\(lyric.*?\)`),
	regexp.MustCompile(`(?i)\[lyric.*?\]`),
	regexp.MustCompile(`(?i)\(.*?video\)`),
	regexp.MustCompile(`(?i)\[.*?video\]`),
	regexp.MustCompile(`(?i)\((?:remix|cover|live|acoustic|slowed.*?|lofi.*?)\)`),
	regexp.MustCompile(`(?i)\[(?:remix|cover|live|acoustic|slowed.*?|lofi.*?)\]`),
	regexp.MustCompile(`(?i)\bHD\b`),
	regexp.MustCompile(`(?i)\bHQ\b`),
	regexp.MustCompile(`(?i)\b4K\b`),
	regexp.MustCompile(`\|.*$`),
}

// featuringPattern captures "ft. X" / "feat. X" segments, parenthesised or
// bare, so the featured artist can be offered as a match hint.
var featuringPattern = regexp.MustCompile(`(?i)[(\[]?\s*(?:ft\.?|feat\.?|featuring)\s+([^)\](|]+)[)\]]?`)

// channelSuffixPattern strips decorative suffixes common in uploader names.
var channelSuffixPattern = regexp.MustCompile(`(?i)\s+[-–]?\s*(official|music|vevo|records|topic)\s*$`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Normalize derives a catalog query from a raw title and uploader name.
//
// The returned query's ArtistHints list a featuring artist extracted from
// the title (when present) followed by the cleaned uploader name; the
// matcher tries them in order.
func Normalize(rawTitle, uploader string) model.NormalizedQuery {
	title := rawTitle
	var hints []string

	if m := featuringPattern.FindStringSubmatch(title); m != nil {
		if feat := strings.TrimSpace(m[1]); feat != "" {
			hints = append(hints, feat)
		}
		title = featuringPattern.ReplaceAllString(title, "")
	}

	for _, p := range noisePatterns {
		title = p.ReplaceAllString(title, "")
	}

	title = whitespacePattern.ReplaceAllString(title, " ")
	title = strings.Trim(title, " -|")
	if title == "" {
		title = rawTitle
	}

	if hint := cleanUploader(uploader); hint != "" {
		hints = append(hints, hint)
	}

	return model.NormalizedQuery{SearchTitle: title, ArtistHints: hints}
}

// cleanUploader strips channel-suffix noise like "Official", "Music" or
// "VEVO" from an uploader name, repeatedly so stacked suffixes
// ("X Music Official") collapse too.
func cleanUploader(uploader string) string {
	name := strings.TrimSpace(uploader)
	for {
		stripped := channelSuffixPattern.ReplaceAllString(name, "")
		stripped = strings.TrimSpace(stripped)
		if stripped == name {
			break
		}
		name = stripped
	}
	if name == "" {
		// A channel called just "Official" or "VEVO" is still a better
		// hint than nothing.
		return strings.TrimSpace(uploader)
	}
	return name
}
