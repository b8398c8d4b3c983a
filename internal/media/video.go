package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrTranscode is returned when ffmpeg itself fails. Callers decide the
// policy for it; scratch-file I/O failures are reported as plain errors.
var ErrTranscode = errors.New("media: transcode failed")

const (
	defaultVideoBitrate = "5000k"
	maxStderrBytes      = 2048
)

// Transcoder re-encodes video to H.264/MP4 at a fixed bitrate via an
// external ffmpeg binary, staging input and output as scoped files
// under a dedicated scratch directory.
type Transcoder struct {
	ffmpegPath string
	scratchDir string
	bitrate    string
	logger     *slog.Logger
}

// NewTranscoder creates a Transcoder. Empty ffmpegPath defaults to
// "ffmpeg" resolved via PATH; empty scratchDir defaults to a directory
// under os.TempDir(). The scratch directory is created if missing.
func NewTranscoder(ffmpegPath, scratchDir string, logger *slog.Logger) (*Transcoder, error) {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if scratchDir == "" {
		scratchDir = filepath.Join(os.TempDir(), "railsathi")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(scratchDir, 0o750); err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	return &Transcoder{
		ffmpegPath: ffmpegPath,
		scratchDir: scratchDir,
		bitrate:    defaultVideoBitrate,
		logger:     logger,
	}, nil
}

// Transcode writes input to a scratch file, runs ffmpeg into a second
// scratch path and returns the re-encoded bytes. Both scratch files are
// removed on every exit path. An ffmpeg failure is reported as
// ErrTranscode so the caller can fall back to the original bytes.
func (t *Transcoder) Transcode(ctx context.Context, name string, input []byte) ([]byte, error) {
	name = filepath.Base(name)
	rawPath := filepath.Join(t.scratchDir, name)
	outPath := filepath.Join(t.scratchDir, "compressed_"+name)

	if err := os.WriteFile(rawPath, input, 0o600); err != nil {
		return nil, fmt.Errorf("write scratch file: %w", err)
	}
	defer func() {
		_ = os.Remove(rawPath)
		_ = os.Remove(outPath)
	}()

	args := []string{
		"-y",
		"-i", rawPath,
		"-c:v", "libx264",
		"-b:v", t.bitrate,
		"-c:a", "aac",
		outPath,
	}

	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("transcode cancelled: %w", ctx.Err())
		}
		t.logger.WarnContext(ctx, "ffmpeg failed",
			slog.String("file", name),
			slog.String("err", err.Error()),
			slog.String("stderr", tail(stderr.String(), maxStderrBytes)),
		)
		return nil, fmt.Errorf("%w: %v", ErrTranscode, err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read transcoded file: %w", err)
	}
	return out, nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
