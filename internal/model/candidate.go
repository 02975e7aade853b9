package model

// MatchCandidate is a single catalog search result considered for selection.
//
// Candidates are produced at the catalog boundary by converting the
// service's response shape into this fixed record; only the selected
// candidate survives past matching.
type MatchCandidate struct {
	// CatalogID identifies the track within the catalog service.
	CatalogID string

	// Title and Artist are the catalog's canonical metadata.
	Title  string
	Artist string

	// Album is the album title, empty if unknown.
	Album string

	// Year is the release year, 0 if unknown.
	Year int

	// DurationSeconds is the track length, 0 if unknown.
	DurationSeconds int

	// ArtworkURL points at cover art, empty if none is available.
	ArtworkURL string

	// QualityScore is the catalog-reported intrinsic quality (e.g. best
	// available bitrate in kbps). Used only as a tie-break.
	QualityScore float64
}

// TrackDetails is the full song record fetched for a selected candidate.
//
// The catalog's search results do not carry stream URLs, so a second
// per-track lookup fills in download variants and the extended tag fields.
type TrackDetails struct {
	CatalogID       string
	Title           string
	Artist          string
	Album           string
	AlbumArtist     string
	Composers       string
	Label           string
	Language        string
	Copyright       string
	PageURL         string
	Year            int
	DurationSeconds int
	ArtworkURL      string

	// DownloadURLs lists available stream variants ordered as returned by
	// the catalog, typically ascending by quality.
	DownloadURLs []DownloadVariant
}

// DownloadVariant is one downloadable encoding of a track.
type DownloadVariant struct {
	// Quality is the catalog's label for the variant, e.g. "320kbps".
	Quality string
	URL     string
}

// BestDownloadURL returns the URL of the preferred variant.
//
// The variant labelled preferQuality wins; otherwise the last listed
// variant (the catalog orders variants ascending by quality) is used.
// Returns an empty string when no variants exist.
func (d TrackDetails) BestDownloadURL(preferQuality string) string {
	if len(d.DownloadURLs) == 0 {
		return ""
	}
	for _, v := range d.DownloadURLs {
		if v.Quality == preferQuality {
			return v.URL
		}
	}
	return d.DownloadURLs[len(d.DownloadURLs)-1].URL
}

// TagFields holds every metadata field embedded into a downloaded file.
type TagFields struct {
	Title           string
	Artist          string
	Album           string
	AlbumArtist     string
	Composers       string
	Label           string
	Genre           string
	Copyright       string
	PageURL         string
	Year            int
	DurationSeconds int
}

// Tags derives the tag field set for a track, mirroring the catalog's
// extended metadata. Genre carries the catalog language (the catalog has
// no genre field of its own).
func (d TrackDetails) Tags() TagFields {
	albumArtist := d.AlbumArtist
	if albumArtist == "" {
		albumArtist = d.Artist
	}
	return TagFields{
		Title:           d.Title,
		Artist:          d.Artist,
		Album:           d.Album,
		AlbumArtist:     albumArtist,
		Composers:       d.Composers,
		Label:           d.Label,
		Genre:           titleCase(d.Language),
		Copyright:       d.Copyright,
		PageURL:         d.PageURL,
		Year:            d.Year,
		DurationSeconds: d.DurationSeconds,
	}
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}
