package ioutils

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tmp")
	dst := filepath.Join(dir, "out.mp3")

	if err := os.WriteFile(src, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile() error = %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be gone after move")
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "audio" {
		t.Errorf("destination content = %q, want %q", got, "audio")
	}
}

func TestRemoveQuiet(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "a")
	if err := os.WriteFile(existing, nil, 0644); err != nil {
		t.Fatal(err)
	}

	// Must not panic on missing files or empty paths.
	RemoveQuiet(existing, filepath.Join(dir, "missing"), "")

	if _, err := os.Stat(existing); !os.IsNotExist(err) {
		t.Error("existing file should have been removed")
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPrepareArtwork_Resizes(t *testing.T) {
	out, err := PrepareArtwork(encodePNG(t, 1000, 800), 500)
	if err != nil {
		t.Fatalf("PrepareArtwork() error = %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not JPEG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 500 || b.Dy() != 400 {
		t.Errorf("resized to %dx%d, want 500x400", b.Dx(), b.Dy())
	}
}

func TestPrepareArtwork_NoUpscale(t *testing.T) {
	out, err := PrepareArtwork(encodePNG(t, 300, 300), 500)
	if err != nil {
		t.Fatalf("PrepareArtwork() error = %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not JPEG: %v", err)
	}
	if img.Bounds().Dx() != 300 {
		t.Errorf("small image should not be upscaled, got width %d", img.Bounds().Dx())
	}
}

func TestPrepareArtwork_BadData(t *testing.T) {
	if _, err := PrepareArtwork([]byte("not an image"), 500); err == nil {
		t.Error("expected error for undecodable data")
	}
}
