// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for ffmpeg, libx264 and ffprobe.
package check

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/backmassage/img2mp4/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound = errors.New("ffmpeg not found (set --ffmpeg or FFMPEG_PATH)")
	ErrX264Failed     = errors.New("libx264 test encode failed (ffmpeg built without libx264?)")
)

const testTimeout = 20 * time.Second

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints the ffmpeg version, the
// available H.264 encoders, a libx264 test result, ffprobe availability and
// host CPU information. It reports ok=false when encoding cannot work.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkFfmpeg(cfg, log)
	if ok {
		checkH264Encoders(cfg, log)
		ok = checkX264(cfg, log)
	}
	checkFfprobe(cfg, log)
	checkCPU(log)
	return ok
}

// checkFfmpeg verifies the configured ffmpeg resolves and logs its version string.
func checkFfmpeg(cfg *config.Config, log Logger) bool {
	path, err := exec.LookPath(cfg.FFmpegPath)
	if err != nil {
		log.Error("ffmpeg not found: %s", cfg.FFmpegPath)
		return false
	}
	out, err := exec.Command(path, "-version").Output()
	if err != nil {
		log.Warn("ffmpeg found at %s but -version failed: %v", path, err)
		return true
	}
	log.Success("ffmpeg: %s", firstLine(string(out)))
	log.Debug(cfg.Verbose, "  path: %s", path)
	return true
}

// checkH264Encoders lists the H.264 encoders reported by ffmpeg.
func checkH264Encoders(cfg *config.Config, log Logger) {
	log.Info("H.264 encoders:")
	out, err := exec.Command(cfg.FFmpegPath, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	for _, line := range H264Encoders(string(out)) {
		log.Info("  %s", line)
	}
}

// H264Encoders filters `ffmpeg -encoders` output down to H.264 entries.
func H264Encoders(listing string) []string {
	var lines []string
	for _, line := range strings.Split(listing, "\n") {
		if strings.Contains(line, "264") {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return lines
}

// checkX264 runs a minimal libx264 encode to verify encoding works.
func checkX264(cfg *config.Config, log Logger) bool {
	log.Info("Testing libx264...")
	if runSilent(cfg.FFmpegPath, x264TestArgs(cfg)...) {
		log.Success("libx264 works")
		return true
	}
	log.Error("libx264 test encode failed")
	return false
}

// checkFfprobe reports whether ffprobe is available for output verification.
func checkFfprobe(cfg *config.Config, log Logger) {
	if path, err := exec.LookPath(cfg.FFprobePath); err == nil {
		log.Success("ffprobe: %s", path)
		return
	}
	log.Warn("ffprobe not found: output verification will be skipped")
}

// checkCPU logs the host CPU model and core counts.
func checkCPU(log Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil || logical == 0 {
		logical = runtime.NumCPU()
	}
	physical, _ := cpu.CountsWithContext(ctx, false)

	model := "unknown"
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		model = strings.TrimSpace(infos[0].ModelName)
	}
	log.Info("CPU: %s (%d physical / %d logical cores)", model, physical, logical)
}

// CheckDeps is the pre-run validation: it verifies that ffmpeg resolves and
// that a short libx264 encode succeeds. Returns a sentinel error on failure.
// ffprobe is optional and not checked here.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		return ErrFfmpegNotFound
	}
	if !runSilent(cfg.FFmpegPath, x264TestArgs(cfg)...) {
		return ErrX264Failed
	}
	return nil
}

// --- internal helpers ---

// x264TestArgs returns the ffmpeg arguments for a minimal test encode using
// the configured codec and pixel format.
func x264TestArgs(cfg *config.Config) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=64x64:d=0.1",
		"-c:v", cfg.Codec, "-pix_fmt", cfg.PixFmt,
		"-f", "null", "-",
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		return s[:idx]
	}
	return s
}

// runSilent runs a command with a timeout and returns true if it exits with
// status 0. Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	return exec.CommandContext(ctx, name, args...).Run() == nil
}
