package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/backmassage/img2mp4/internal/config"
	"github.com/backmassage/img2mp4/internal/ffmpeg"
	"github.com/backmassage/img2mp4/internal/logging"
)

// ProgressFunc receives whole-number completion percentages in [0, 100].
// Within one run the values are strictly increasing.
type ProgressFunc func(percent int)

// Run encodes req into an MP4 and returns the absolute output path.
//
// progress may be nil. It is invoked synchronously from the stderr reader,
// never after Run returns, and receives 100 before a successful return.
// Cancelling ctx kills ffmpeg and its descendants and yields
// ErrInterrupted; the manifest is removed either way.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, req Request, progress ProgressFunc) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if progress == nil {
		progress = func(int) {}
	}
	if req.RunID == "" {
		req.RunID = uuid.New().String()
	}

	outPath, err := filepath.Abs(req.OutputPath)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInterrupted, err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	// --- Manifest ---
	manifest := manifestPath(outPath, req.RunID)
	defer removeManifest(log, manifest)
	if err := ffmpeg.WriteManifestFile(manifest, req.Images, req.FPS); err != nil {
		return "", err
	}
	log.Debug(cfg.Verbose, "Manifest: %s (%d images, %s s each)",
		manifest, len(req.Images), ffmpeg.FrameDuration(req.FPS))

	// --- Encode ---
	args := ffmpeg.Build(cfg, ffmpeg.Params{
		ManifestPath: manifest,
		OutputPath:   outPath,
		FPS:          req.FPS,
		Quality:      req.Quality,
	})
	log.Debug(cfg.Verbose, "Command: %s", strings.Join(args, " "))

	tracker := ffmpeg.NewTracker(len(req.Images))
	res := ffmpeg.Execute(ctx, args, func(line string) {
		frame, ok := ffmpeg.ParseFrame(line)
		if !ok {
			return
		}
		if pct, changed := tracker.Update(frame); changed {
			progress(pct)
		}
	})

	// --- Outcome ---
	if ctx.Err() != nil {
		return "", fmt.Errorf("%w: %v", ErrInterrupted, ctx.Err())
	}
	if res.Err != nil {
		logStderr(cfg, log, res.Stderr)
		return "", fmt.Errorf("%w: %s", ErrEncoderFailed, res.Describe())
	}
	if fi, err := os.Stat(outPath); err != nil || !fi.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrOutputMissing, outPath)
	}
	if tracker.Last() < 100 {
		progress(100)
	}
	return outPath, nil
}

// manifestPath returns the concat listing path: next to the output, unique per run.
func manifestPath(outPath, runID string) string {
	return filepath.Join(filepath.Dir(outPath), "ffmpeg_list-"+runID+".txt")
}

func removeManifest(log *logging.Logger, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn("Could not remove manifest %s: %v", path, err)
	}
}

func logStderr(cfg *config.Config, log *logging.Logger, stderr string) {
	if stderr == "" {
		return
	}
	log.Debug(cfg.Verbose, "Last ffmpeg output:")
	for _, l := range strings.Split(stderr, "\n") {
		log.Debug(cfg.Verbose, "  %s", l)
	}
}
