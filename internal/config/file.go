package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML shape of --config. Pointer fields
// distinguish "absent" from a zero value so only keys present in the file
// replace defaults.
type FileConfig struct {
	Output  *string `yaml:"output"`
	FPS     *int    `yaml:"fps"`
	Quality *int    `yaml:"quality"`
	Preset  *string `yaml:"preset"`
	FFmpeg  *string `yaml:"ffmpeg"`
	FFprobe *string `yaml:"ffprobe"`
	Color   *string `yaml:"color"`
	Log     *string `yaml:"log"`
	Verbose *bool   `yaml:"verbose"`
}

// LoadFile reads and decodes a YAML defaults file. Unknown keys are rejected
// so typos surface instead of being silently ignored.
func LoadFile(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()

	var fc FileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return &fc, nil
		}
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return &fc, nil
}

// Apply copies the values present in the file into cfg, skipping any field
// whose flag name appears in explicit (flags the user set on the command line).
func (fc *FileConfig) Apply(cfg *Config, explicit map[string]bool) error {
	set := func(names ...string) bool {
		for _, n := range names {
			if explicit[n] {
				return false
			}
		}
		return true
	}

	if fc.Output != nil && set("output", "o") {
		cfg.OutputPath = *fc.Output
	}
	if fc.FPS != nil && set("fps", "r") {
		cfg.FPS = *fc.FPS
	}
	if fc.Quality != nil && set("quality", "q") {
		cfg.Quality = *fc.Quality
	}
	if fc.Preset != nil && set("preset") {
		cfg.Preset = *fc.Preset
	}
	if fc.FFmpeg != nil && set("ffmpeg") {
		cfg.FFmpegPath = *fc.FFmpeg
	}
	if fc.FFprobe != nil && set("ffprobe") {
		cfg.FFprobePath = *fc.FFprobe
	}
	if fc.Log != nil && set("log", "l") {
		cfg.LogFile = *fc.Log
	}
	if fc.Verbose != nil && set("verbose", "v") {
		cfg.Verbose = *fc.Verbose
	}
	if fc.Color != nil && set("color", "no-color") {
		v := colorModeValue{&cfg.ColorMode}
		if err := v.Set(*fc.Color); err != nil {
			return err
		}
	}
	return nil
}
