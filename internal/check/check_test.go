package check

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/img2mp4/internal/config"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) add(level, format string, args ...interface{}) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Info(f string, a ...interface{})    { r.add("INFO", f, a...) }
func (r *recordingLogger) Success(f string, a ...interface{}) { r.add("OK", f, a...) }
func (r *recordingLogger) Warn(f string, a ...interface{})    { r.add("WARN", f, a...) }
func (r *recordingLogger) Error(f string, a ...interface{})   { r.add("ERROR", f, a...) }
func (r *recordingLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		r.add("DEBUG", f, a...)
	}
}

func (r *recordingLogger) joined() string { return strings.Join(r.lines, "\n") }

func TestH264Encoders(t *testing.T) {
	listing := `Encoders:
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC (codec h264)
 V....D libx265              libx265 H.265 / HEVC (codec hevc)
 V....D h264_vaapi           H.264/AVC (VAAPI) (codec h264)
 A....D aac                  AAC (Advanced Audio Coding)`

	got := H264Encoders(listing)
	require.Len(t, got, 2)
	assert.True(t, strings.HasPrefix(got[0], "V....D libx264"))
	assert.True(t, strings.HasPrefix(got[1], "V....D h264_vaapi"))
}

func TestCheckDeps_MissingFfmpeg(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = filepath.Join(t.TempDir(), "no-such-ffmpeg")
	assert.ErrorIs(t, CheckDeps(&cfg), ErrFfmpegNotFound)
}

func TestCheckDeps_EncodeFails(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = fakeBinary(t, "exit 1\n")
	assert.ErrorIs(t, CheckDeps(&cfg), ErrX264Failed)
}

func TestCheckDeps_OK(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = fakeBinary(t, "exit 0\n")
	assert.NoError(t, CheckDeps(&cfg))
}

func TestRunCheck_MissingFfmpeg(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = filepath.Join(t.TempDir(), "no-such-ffmpeg")
	cfg.FFprobePath = filepath.Join(t.TempDir(), "no-such-ffprobe")

	log := &recordingLogger{}
	assert.False(t, RunCheck(&cfg, log))

	out := log.joined()
	assert.Contains(t, out, "ERROR ffmpeg not found")
	assert.Contains(t, out, "WARN ffprobe not found")
	assert.Contains(t, out, "INFO CPU:")
}

func TestRunCheck_FakeFfmpeg(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = fakeBinary(t, `
case "$1" in
  -version) echo 'ffmpeg version 6.1-test'; echo 'built with gcc';;
  -hide_banner)
    if [ "$2" = "-encoders" ]; then
      echo ' V....D libx264 libx264 H.264 / AVC (codec h264)'
    fi;;
esac
exit 0
`)
	log := &recordingLogger{}
	assert.True(t, RunCheck(&cfg, log))

	out := log.joined()
	assert.Contains(t, out, "OK ffmpeg: ffmpeg version 6.1-test")
	assert.Contains(t, out, "INFO   V....D libx264")
	assert.Contains(t, out, "OK libx264 works")
}

func fakeBinary(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}
