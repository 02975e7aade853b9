package normalize

import "testing"

func TestNormalize_TitleCleaning(t *testing.T) {
	tests := []struct {
		name     string
		rawTitle string
		uploader string
		want     string
	}{
		{"official video bracket", "Song Name [Official Video]", "Channel", "Song Name"},
		{"official video paren", "Song Name (Official Music Video)", "Channel", "Song Name"},
		{"audio marker", "Song Name (Audio)", "Channel", "Song Name"},
		{"lyric marker", "Song Name [Lyrics]", "Channel", "Song Name"},
		{"quality tags", "Song Name HD 4K", "Channel", "Song Name"},
		{"pipe tail", "Song Name | Best Channel Ever", "Channel", "Song Name"},
		{"release marker", "Song Name (Remix)", "Channel", "Song Name"},
		{"live marker", "Song Name [Live]", "Channel", "Song Name"},
		{"trailing dash", "Song Name - (Official Video)", "Channel", "Song Name"},
		{"untouched", "Plain Song Name", "Channel", "Plain Song Name"},
		{"multiple decorations", "Song [Official Video] (Lyrics) HD", "Channel", "Song"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.rawTitle, tt.uploader)
			if got.SearchTitle != tt.want {
				t.Errorf("Normalize(%q).SearchTitle = %q, want %q", tt.rawTitle, got.SearchTitle, tt.want)
			}
		})
	}
}

func TestNormalize_FeaturingArtistHint(t *testing.T) {
	q := Normalize("Shape of You [Official Video] ft. Stormzy", "Ed Sheeran")

	if q.SearchTitle != "Shape of You" {
		t.Errorf("SearchTitle = %q, want %q", q.SearchTitle, "Shape of You")
	}
	if len(q.ArtistHints) != 2 {
		t.Fatalf("ArtistHints = %v, want 2 hints", q.ArtistHints)
	}
	if q.ArtistHints[0] != "Stormzy" {
		t.Errorf("first hint = %q, want featured artist %q", q.ArtistHints[0], "Stormzy")
	}
	if q.ArtistHints[1] != "Ed Sheeran" {
		t.Errorf("second hint = %q, want uploader %q", q.ArtistHints[1], "Ed Sheeran")
	}
}

func TestNormalize_FeaturingParenthetical(t *testing.T) {
	q := Normalize("Song Title (feat. Some Artist)", "Uploader")
	if q.SearchTitle != "Song Title" {
		t.Errorf("SearchTitle = %q, want %q", q.SearchTitle, "Song Title")
	}
	if len(q.ArtistHints) == 0 || q.ArtistHints[0] != "Some Artist" {
		t.Errorf("ArtistHints = %v, want first hint %q", q.ArtistHints, "Some Artist")
	}
}

func TestNormalize_UploaderCleaning(t *testing.T) {
	tests := []struct {
		uploader string
		want     string
	}{
		{"Ed Sheeran", "Ed Sheeran"},
		{"ArtistVEVO", "ArtistVEVO"}, // suffix only stripped as a separate word
		{"Artist VEVO", "Artist"},
		{"Artist Official", "Artist"},
		{"Artist Music Official", "Artist"},
		{"Artist - Topic", "Artist"},
	}

	for _, tt := range tests {
		t.Run(tt.uploader, func(t *testing.T) {
			q := Normalize("Some Song", tt.uploader)
			if len(q.ArtistHints) != 1 {
				t.Fatalf("ArtistHints = %v, want exactly one hint", q.ArtistHints)
			}
			if q.ArtistHints[0] != tt.want {
				t.Errorf("uploader hint = %q, want %q", q.ArtistHints[0], tt.want)
			}
		})
	}
}

func TestNormalize_EmptyFallsBackToRaw(t *testing.T) {
	q := Normalize("(Official Video)", "Channel")
	if q.SearchTitle != "(Official Video)" {
		t.Errorf("empty cleaned title should fall back to raw, got %q", q.SearchTitle)
	}
}

func TestNormalize_NoUploader(t *testing.T) {
	q := Normalize("Song Name", "")
	if len(q.ArtistHints) != 0 {
		t.Errorf("empty uploader should give no hints, got %v", q.ArtistHints)
	}
}

func TestNormalize_Pure(t *testing.T) {
	a := Normalize("Song [Official Video] ft. Guest", "Artist Music")
	b := Normalize("Song [Official Video] ft. Guest", "Artist Music")
	if a.SearchTitle != b.SearchTitle || len(a.ArtistHints) != len(b.ArtistHints) {
		t.Errorf("Normalize is not deterministic: %+v vs %+v", a, b)
	}
}
