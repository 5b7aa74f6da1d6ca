package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/photos/trip", "/photos/trip"},
		{"single trailing slash", "/photos/trip/", "/photos/trip"},
		{"multiple trailing slashes", "/photos/trip///", "/photos/trip"},
		{"root path", "/", "/"},
		{"relative path", "frames", "frames"},
		{"relative with slash", "frames/", "frames"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDirArg(tt.in))
		})
	}
}

func TestValidateEncoding(t *testing.T) {
	tests := []struct {
		name    string
		fps     int
		quality int
		wantErr string
	}{
		{"defaults", 25, 23, ""},
		{"lowest quality bound", 1, QualityMin, ""},
		{"highest quality bound", 60, QualityMax, ""},
		{"zero fps", 0, 23, "frame rate"},
		{"negative fps", -5, 23, "frame rate"},
		{"quality below range", 25, 17, "between 18 and 28"},
		{"quality above range", 25, 30, "between 18 and 28"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEncoding(tt.fps, tt.quality)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip path requirement
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "Validate() error = %v", err)
		})
	}
}

func TestValidate_RequiresInputAndDefaultsOutput(t *testing.T) {
	cfg := DefaultConfig()
	require.Error(t, cfg.Validate(), "empty input dir must fail")

	cfg.InputDir = "/photos"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Join("/photos", DefaultOutputName), cfg.OutputPath)
}

func TestValidate_KeepsExplicitOutput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputDir = "/photos"
	cfg.OutputPath = "/videos/trip.mp4"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/videos/trip.mp4", cfg.OutputPath)
}

func TestValidate_CheckOnlySkipsPathsAndRanges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.Quality = 99
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	t.Setenv("FFMPEG_PATH", "")
	t.Setenv("FFPROBE_PATH", "")
	cfg := DefaultConfig()

	assert.Equal(t, 25, cfg.FPS)
	assert.Equal(t, 23, cfg.Quality)
	assert.Equal(t, "fast", cfg.Preset)
	assert.Equal(t, "libx264", cfg.Codec)
	assert.Equal(t, "yuv420p", cfg.PixFmt)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "ffprobe", cfg.FFprobePath)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
	assert.False(t, cfg.DryRun)
}

func TestDefaultConfig_EnvToolPaths(t *testing.T) {
	t.Setenv("FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("FFPROBE_PATH", "/opt/ffmpeg/bin/ffprobe")
	cfg := DefaultConfig()
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "/opt/ffmpeg/bin/ffprobe", cfg.FFprobePath)
}

func TestParseArgs(t *testing.T) {
	cfg := DefaultConfig()
	var out bytes.Buffer
	err := ParseArgs(&cfg, "test", []string{"-r", "30", "--quality", "20", "-o", "/tmp/x.mp4", "--no-color", "/photos/"}, &out)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, 20, cfg.Quality)
	assert.Equal(t, "/tmp/x.mp4", cfg.OutputPath)
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.Equal(t, "/photos", cfg.InputDir)
}

func TestParseArgs_PositionalCount(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseArgs(&cfg, "test", []string{"a", "b"}, &bytes.Buffer{})
	assert.Error(t, err)

	cfg = DefaultConfig()
	err = ParseArgs(&cfg, "test", []string{"--check"}, &bytes.Buffer{})
	assert.NoError(t, err, "--check needs no input dir")
}

func TestParseArgs_HelpAndVersion(t *testing.T) {
	for _, arg := range []string{"-h", "--help", "-V", "--version"} {
		t.Run(arg, func(t *testing.T) {
			cfg := DefaultConfig()
			var out bytes.Buffer
			err := ParseArgs(&cfg, "9.9.9", []string{arg}, &out)
			assert.ErrorIs(t, err, ErrExitEarly)
			assert.Contains(t, out.String(), "img2mp4 v9.9.9")
		})
	}
}

func TestParseArgs_ConfigFilePrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img2mp4.yaml")
	yml := "fps: 12\nquality: 19\npreset: slow\ncolor: never\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg := DefaultConfig()
	err := ParseArgs(&cfg, "test", []string{"--config", path, "-q", "26", "/photos"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.FPS, "file value applies when flag unset")
	assert.Equal(t, 26, cfg.Quality, "explicit flag wins over file")
	assert.Equal(t, "slow", cfg.Preset)
	assert.Equal(t, ColorNever, cfg.ColorMode)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("framerate: 10\n"), 0o644))
	_, err = LoadFile(bad)
	assert.Error(t, err, "unknown keys are rejected")

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	fc, err := LoadFile(empty)
	require.NoError(t, err)
	assert.Nil(t, fc.FPS)
}

func TestFileConfig_InvalidColor(t *testing.T) {
	bad := "purple"
	fc := &FileConfig{Color: &bad}
	cfg := DefaultConfig()
	assert.Error(t, fc.Apply(&cfg, nil))
}
