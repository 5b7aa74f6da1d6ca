// Package config holds runtime configuration: defaults, CLI flag parsing, the
// optional YAML defaults file, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Accepted CRF range for the libx264 quality parameter (inclusive).
const (
	QualityMin = 18
	QualityMax = 28
)

// DefaultOutputName is the file created inside the input directory when no
// --output is given.
const DefaultOutputName = "output.mp4"

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig], then
// by [LoadFile] (when --config is given) and [ParseFlags], before being passed
// by pointer to packages that need it.
type Config struct {
	// Paths.
	InputDir   string // Positional argument.
	OutputPath string // Default: <InputDir>/output.mp4.
	ConfigFile string // Optional YAML defaults file.

	// Encoding parameters.
	FPS     int    // Default: 25.
	Quality int    // CRF. Default: 23. Range [QualityMin, QualityMax].
	Preset  string // Default: "fast".
	Codec   string // Fixed: "libx264".
	PixFmt  string // Fixed: "yuv420p".

	// External tools.
	FFmpegPath  string // Default: "ffmpeg", or $FFMPEG_PATH.
	FFprobePath string // Default: "ffprobe", or $FFPROBE_PATH.

	// Behavior flags.
	DryRun bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with the built-in defaults. Environment
// overrides for the tool paths are applied here so that flags and the YAML
// file can still replace them.
func DefaultConfig() Config {
	return Config{
		FPS:         25,
		Quality:     23,
		Preset:      "fast",
		Codec:       "libx264",
		PixFmt:      "yuv420p",
		FFmpegPath:  envOr("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: envOr("FFPROBE_PATH", "ffprobe"),
		ColorMode:   ColorAuto,
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// ValidateEncoding checks the frame rate and CRF quality. It is shared by
// flag validation and by the encode pipeline's request validation.
func ValidateEncoding(fps, quality int) error {
	if fps <= 0 {
		return fmt.Errorf("frame rate must be a positive integer (got %d)", fps)
	}
	if quality < QualityMin || quality > QualityMax {
		return fmt.Errorf("quality (CRF) must be between %d and %d (got %d)", QualityMin, QualityMax, quality)
	}
	return nil
}

// Validate checks enum fields and encoding ranges. When not in CheckOnly mode
// it also requires an input directory and fills in the default output path.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if strings.TrimSpace(c.Preset) == "" {
		return errors.New("preset must not be empty")
	}
	if strings.TrimSpace(c.FFmpegPath) == "" {
		return errors.New("ffmpeg path must not be empty")
	}

	if c.CheckOnly {
		return nil
	}
	if err := ValidateEncoding(c.FPS, c.Quality); err != nil {
		return err
	}
	if c.InputDir == "" {
		return errors.New("need exactly one input_dir")
	}
	if c.OutputPath == "" {
		c.OutputPath = filepath.Join(c.InputDir, DefaultOutputName)
	}
	return nil
}
