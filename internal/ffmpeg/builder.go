package ffmpeg

import (
	"strconv"

	"github.com/backmassage/img2mp4/internal/config"
)

// Params are the per-run values injected into the argument skeleton.
type Params struct {
	ManifestPath string
	OutputPath   string // Absolute.
	FPS          int
	Quality      int // CRF.
}

// Build constructs the complete ffmpeg argument slice (binary first) for
// encoding the manifest into an MP4. The skeleton is fixed: concat input with
// unsafe paths allowed, constant output frame rate, libx264 at the requested
// CRF, yuv420p for broad player support, and unconditional overwrite.
func Build(cfg *config.Config, p Params) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, cfg.FFmpegPath, "-hide_banner", "-nostdin", "-y")

	// Loglevel: info when verbose, otherwise error. Stats stay on either way
	// because they are the progress channel.
	if cfg.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}
	args = append(args, "-stats")

	// --- Input ---
	args = append(args, "-f", "concat", "-safe", "0", "-i", p.ManifestPath)

	// --- Video ---
	args = append(args,
		"-r", strconv.Itoa(p.FPS),
		"-c:v", cfg.Codec,
		"-pix_fmt", cfg.PixFmt,
		"-crf", strconv.Itoa(p.Quality),
		"-preset", cfg.Preset,
	)

	// --- Container ---
	args = append(args, "-movflags", "+faststart")

	// --- Output ---
	args = append(args, p.OutputPath)

	return args
}
