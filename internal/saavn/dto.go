package saavn

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/handiism/mploader/internal/model"
)

// flexInt decodes JSON numbers that the API sometimes serializes as
// strings ("2017") and sometimes as numbers (2017).
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Unparseable values degrade to "unknown" rather than failing
		// the whole response.
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

// flexAlbum decodes album fields that appear either as a bare string or
// as an object with a name.
type flexAlbum struct {
	Name string
}

func (a *flexAlbum) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	a.Name = obj.Name
	return nil
}

type imageVariant struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
}

type downloadVariant struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
}

type artistRef struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type artistGroup struct {
	Primary []artistRef `json:"primary"`
	All     []artistRef `json:"all"`
}

// songRecord is the union of the fields the search and details endpoints
// return for a song. Search results fill a subset.
type songRecord struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Title          string            `json:"title"`
	PrimaryArtists string            `json:"primaryArtists"`
	Artists        artistGroup       `json:"artists"`
	Album          flexAlbum         `json:"album"`
	Year           flexInt           `json:"year"`
	Duration       flexInt           `json:"duration"`
	Language       string            `json:"language"`
	Label          string            `json:"label"`
	Copyright      string            `json:"copyright"`
	URL            string            `json:"url"`
	Image          []imageVariant    `json:"image"`
	DownloadURL    []downloadVariant `json:"downloadUrl"`
}

type searchResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Songs struct {
			Results []songRecord `json:"results"`
		} `json:"songs"`
		TopQuery struct {
			Results []songRecord `json:"results"`
		} `json:"topQuery"`
	} `json:"data"`
}

type songResponse struct {
	Success bool         `json:"success"`
	Data    []songRecord `json:"data"`
}

// title returns whichever of name/title the endpoint populated.
func (s songRecord) title() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Title
}

// artistNames joins the primary artist names; search results carry them
// as a single pre-joined string instead.
func (s songRecord) artistNames() string {
	if len(s.Artists.Primary) > 0 {
		names := make([]string, 0, len(s.Artists.Primary))
		for _, a := range s.Artists.Primary {
			if a.Name != "" {
				names = append(names, a.Name)
			}
		}
		if len(names) > 0 {
			return strings.Join(names, ", ")
		}
	}
	return s.PrimaryArtists
}

// namesByRole joins the names of all-artists entries whose role is in
// roles.
func (s songRecord) namesByRole(roles ...string) string {
	var names []string
	for _, a := range s.Artists.All {
		for _, r := range roles {
			if a.Role == r && a.Name != "" {
				names = append(names, a.Name)
				break
			}
		}
	}
	return strings.Join(names, ", ")
}

// artworkURL picks the preferred image variant, falling back to the last
// (largest) listed one.
func (s songRecord) artworkURL(prefer string) string {
	if len(s.Image) == 0 {
		return ""
	}
	for _, img := range s.Image {
		if img.Quality == prefer {
			return img.URL
		}
	}
	return s.Image[len(s.Image)-1].URL
}

// qualityScore derives the candidate tie-break score from the best
// advertised download variant, e.g. "320kbps" → 320. Records without
// inline variants score 0.
func (s songRecord) qualityScore() float64 {
	best := 0.0
	for _, v := range s.DownloadURL {
		label := strings.TrimSuffix(v.Quality, "kbps")
		if n, err := strconv.ParseFloat(label, 64); err == nil && n > best {
			best = n
		}
	}
	return best
}

// toCandidate converts a search record into the fixed candidate shape.
func (s songRecord) toCandidate(artworkPreference string) model.MatchCandidate {
	return model.MatchCandidate{
		CatalogID:       s.ID,
		Title:           s.title(),
		Artist:          s.artistNames(),
		Album:           s.Album.Name,
		Year:            int(s.Year),
		DurationSeconds: int(s.Duration),
		ArtworkURL:      s.artworkURL(artworkPreference),
		QualityScore:    s.qualityScore(),
	}
}

// toDetails converts a details record into the fixed track details shape.
func (s songRecord) toDetails(artworkPreference string) model.TrackDetails {
	variants := make([]model.DownloadVariant, 0, len(s.DownloadURL))
	for _, v := range s.DownloadURL {
		variants = append(variants, model.DownloadVariant{Quality: v.Quality, URL: v.URL})
	}

	return model.TrackDetails{
		CatalogID:       s.ID,
		Title:           s.title(),
		Artist:          s.artistNames(),
		Album:           s.Album.Name,
		AlbumArtist:     s.namesByRole("music", "composer"),
		Composers:       s.namesByRole("lyricist"),
		Label:           s.Label,
		Language:        s.Language,
		Copyright:       s.Copyright,
		PageURL:         s.URL,
		Year:            int(s.Year),
		DurationSeconds: int(s.Duration),
		ArtworkURL:      s.artworkURL(artworkPreference),
		DownloadURLs:    variants,
	}
}
