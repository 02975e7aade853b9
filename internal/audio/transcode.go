package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Transcoder converts downloaded audio streams to MP3 by shelling out
// to ffmpeg.
//
// The catalog serves AAC; players and the ID3 tagger expect MP3, so
// every stream passes through one constant-bitrate LAME encode. The
// ffmpeg binary path is configuration so bundled or non-PATH installs
// work.
type Transcoder struct {
	ffmpegPath string
	logger     *log.Logger
}

// NewTranscoder creates a Transcoder using the given ffmpeg binary.
//
// An empty path means "ffmpeg" resolved from PATH.
func NewTranscoder(ffmpegPath string, logger *log.Logger) *Transcoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Transcoder{ffmpegPath: ffmpegPath, logger: logger}
}

// Available reports whether the configured ffmpeg binary can be found.
func (t *Transcoder) Available() error {
	if _, err := exec.LookPath(t.ffmpegPath); err != nil {
		return fmt.Errorf("ffmpeg not found at %q: %w", t.ffmpegPath, err)
	}
	return nil
}

// Transcode converts src into an MP3 at dst with the given bitrate in
// kbps. dst is overwritten if it exists.
func (t *Transcoder) Transcode(ctx context.Context, src, dst string, bitrateKbps int) error {
	args := transcodeArgs(src, dst, bitrateKbps)
	t.logger.Debug("transcoding", "src", src, "bitrate", bitrateKbps)

	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg failed: %w: %s", err, stderrTail(stderr.String()))
	}
	return nil
}

func transcodeArgs(src, dst string, bitrateKbps int) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", src,
		"-vn",
		"-codec:a", "libmp3lame",
		"-b:a", fmt.Sprintf("%dk", bitrateKbps),
		dst,
	}
}

// stderrTail keeps the last few lines of ffmpeg's stderr for error
// messages; full output can run to pages.
func stderrTail(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	return strings.Join(lines, " / ")
}
