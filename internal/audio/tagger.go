package audio

import (
	"fmt"
	"strconv"

	"github.com/bogem/id3v2"

	"github.com/handiism/mploader/internal/model"
)

// Tagger writes ID3 tags to MP3 files.
//
// Tagger uses the id3v2 library to replace the metadata of freshly
// transcoded files with the catalog's record for the track:
//   - Title, Artist, Album, Album Artist
//   - Composers, Label, Genre, Year
//   - Copyright, source page URL and duration as comment frames
//   - Cover Art (attached picture)
//
// Example:
//
//	tagger := NewTagger()
//	err := tagger.WriteTags(path, details.Tags(), artworkBytes)
//	if err != nil {
//	    log.Printf("Failed to tag %s: %v", path, err)
//	}
type Tagger struct{}

// NewTagger creates a new Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// WriteTags writes the field set to the MP3 file at path.
//
// The file's existing tag, if any, is parsed and overwritten field by
// field. Artwork is embedded as the front cover when non-nil; pass nil
// to leave picture frames untouched.
func (t *Tagger) WriteTags(path string, fields model.TagFields, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("opening %s for tagging: %w", path, err)
	}
	defer tag.Close()

	t.writeTextFrames(tag, fields)
	t.writeCommentFrames(tag, fields)

	if artwork != nil {
		t.writeArtwork(tag, artwork)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("saving tags to %s: %w", path, err)
	}
	return nil
}

func (t *Tagger) writeTextFrames(tag *id3v2.Tag, fields model.TagFields) {
	tag.SetTitle(fields.Title)
	tag.SetArtist(fields.Artist)
	tag.SetAlbum(fields.Album)
	tag.SetGenre(fields.Genre)

	if fields.AlbumArtist != "" {
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, fields.AlbumArtist)
	}
	if fields.Composers != "" {
		tag.AddTextFrame("TCOM", id3v2.EncodingUTF8, fields.Composers)
	}
	if fields.Label != "" {
		tag.AddTextFrame("TPUB", id3v2.EncodingUTF8, fields.Label)
	}
	if fields.Year > 0 {
		year := strconv.Itoa(fields.Year)
		// TYER for ID3v2.3 readers, TDRC for v2.4.
		tag.AddTextFrame("TYER", id3v2.EncodingUTF8, year)
		tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, year)
	}
}

func (t *Tagger) writeCommentFrames(tag *id3v2.Tag, fields model.TagFields) {
	tag.DeleteFrames(tag.CommonID("Comments"))

	addComment := func(description, text string) {
		if text == "" {
			return
		}
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: description,
			Text:        text,
		})
	}

	addComment("Copyright", fields.Copyright)
	addComment("URL", fields.PageURL)
	if fields.DurationSeconds > 0 {
		addComment("Duration", formatDuration(fields.DurationSeconds))
	}
}

func (t *Tagger) writeArtwork(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	})
}

// formatDuration renders seconds as MM:SS, with minutes unbounded.
func formatDuration(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
