package media

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFFmpeg writes a script that copies its input to its output so the
// transcode pipeline can be exercised without a real ffmpeg install.
// Arg layout matches the Transcoder invocation: -y -i IN ... OUT.
func fakeFFmpeg(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ffmpeg")
	script := "#!/bin/sh\nfor last; do :; done\ncp \"$3\" \"$last\"\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func scratchEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestTranscoder_Success(t *testing.T) {
	scratch := t.TempDir()
	tc, err := NewTranscoder(fakeFFmpeg(t), scratch, nil)
	require.NoError(t, err)

	input := []byte("fake video payload")
	out, err := tc.Transcode(context.Background(), "clip.mp4", input)
	require.NoError(t, err)
	assert.Equal(t, input, out)

	assert.Empty(t, scratchEntries(t, scratch), "scratch files must be removed")
}

func TestTranscoder_FFmpegFailure(t *testing.T) {
	scratch := t.TempDir()
	tc, err := NewTranscoder("/nonexistent/ffmpeg-binary", scratch, nil)
	require.NoError(t, err)

	_, err = tc.Transcode(context.Background(), "clip.mp4", []byte("payload"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTranscode)

	assert.Empty(t, scratchEntries(t, scratch), "scratch files must be removed on failure")
}

func TestTranscoder_StripsPathFromName(t *testing.T) {
	scratch := t.TempDir()
	tc, err := NewTranscoder(fakeFFmpeg(t), scratch, nil)
	require.NoError(t, err)

	_, err = tc.Transcode(context.Background(), "../../escape.mp4", []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, scratchEntries(t, scratch))

	// nothing may be written outside the scratch dir
	_, statErr := os.Stat(filepath.Join(scratch, "..", "..", "escape.mp4"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewTranscoder_CreatesScratchDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "scratch")
	_, err := NewTranscoder("", dir, nil)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
