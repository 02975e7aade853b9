package ioutils

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// PrepareArtwork decodes cover art, scales it down to fit maxSize×maxSize
// (aspect ratio preserved) and re-encodes it as JPEG for ID3 embedding.
//
// Images already within bounds are only re-encoded; upscaling never
// happens. The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	data, _ := client.DownloadBytes(ctx, artworkURL)
//	jpegBytes, err := ioutils.PrepareArtwork(data, 500)
func PrepareArtwork(data []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxSize || height > maxSize {
		ratio := float64(width) / float64(height)
		if ratio > 1 {
			width = maxSize
			height = int(float64(maxSize) / ratio)
		} else {
			height = maxSize
			width = int(float64(maxSize) * ratio)
		}

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
