// Command img2mp4 turns a folder tree of still images into an MP4 slideshow.
// It parses flags, validates config, and either runs the system check
// (--check), a dry-run scan, or one encode with live progress.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/backmassage/img2mp4/internal/check"
	"github.com/backmassage/img2mp4/internal/config"
	"github.com/backmassage/img2mp4/internal/display"
	"github.com/backmassage/img2mp4/internal/logging"
	"github.com/backmassage/img2mp4/internal/pipeline"
	"github.com/backmassage/img2mp4/internal/probe"
	"github.com/backmassage/img2mp4/internal/session"
	"github.com/backmassage/img2mp4/internal/term"
)

// version and commit are set at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

// noticeLimit caps failure text shown on screen; the log keeps all of it.
const noticeLimit = 500

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Load config from defaults, optional YAML file and CLI flags.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		if errors.Is(err, config.ErrExitEarly) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "img2mp4: %v\n", err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "img2mp4: %v\n", err)
		return 2
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "img2mp4: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner(os.Stdout)
	log.Debug(cfg.Verbose, "img2mp4 %s (%s)", version, commit)

	// 2. System check mode.
	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.OutputPath)
	log.Info("Frame rate: %d fps, CRF %d, preset %s", cfg.FPS, cfg.Quality, cfg.Preset)

	sess := session.New(&cfg, log)
	params := session.Params{
		InputDir:   cfg.InputDir,
		OutputPath: cfg.OutputPath,
		FPS:        cfg.FPS,
		Quality:    cfg.Quality,
	}

	// 3. Validate and scan, then make sure ffmpeg works.
	if cfg.DryRun {
		log.Warn("DRY RUN")
	}
	req, err := preflight(&cfg, sess, params)
	if err != nil {
		reportFailure(&cfg, log, err)
		return exitCode(err)
	}

	// 4. Dry run: report only.
	if cfg.DryRun {
		log.Success("[DRY] Would encode %d images into %s (%s)",
			len(req.Images), req.OutputPath,
			display.FormatSeconds(float64(len(req.Images))/float64(req.FPS)))
		for _, img := range req.Images {
			log.Debug(cfg.Verbose, "  %s", img)
		}
		return 0
	}

	// 5. Encode in the background; this goroutine only renders events.
	events, err := sess.Start(context.Background(), params)
	if err != nil {
		reportFailure(&cfg, log, err)
		return exitCode(err)
	}

	// SIGINT/SIGTERM stop the run: ffmpeg and its children are killed and
	// the manifest removed before the event stream closes.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping ffmpeg...")
		sess.Shutdown()
	}()

	view := newProgressView(os.Stdout, log, term.IsTerminal(os.Stdout))
	started := time.Now()
	var final session.Event
	for e := range events {
		if e.Kind == session.EventProgress {
			view.Update(e.Percent)
			continue
		}
		final = e
	}
	view.Done()
	sess.Wait()
	log.Debug(cfg.Verbose, "Session %s", sess.State())

	if final.Kind != session.EventSucceeded {
		err := final.Err
		if err == nil {
			err = pipeline.ErrInterrupted
		}
		reportFailure(&cfg, log, err)
		return exitCode(err)
	}

	reportSuccess(&cfg, log, final.OutputPath, sess.Snapshot(), time.Since(started))
	return 0
}

// reportSuccess prints the completion summary: output path, size, frame
// count and computed duration, plus probed facts when ffprobe is available.
func reportSuccess(cfg *config.Config, log *logging.Logger, out string, snap session.Snapshot, elapsed time.Duration) {
	sum, err := pipeline.Summarize(out, snap.Frames, cfg.FPS)
	if err != nil {
		log.Warn("Encoded, but could not read output: %v", err)
		return
	}

	log.Success("Encoded in %ds", int(elapsed.Seconds()))
	log.Info("==============================")
	log.Info("Output:   %s", sum.OutputPath)
	log.Info("Size:     %s", display.FormatBytes(sum.Bytes))
	log.Info("Frames:   %d", sum.Frames)
	log.Info("Duration: %s", display.FormatSeconds(sum.Duration()))
	log.Debug(cfg.Verbose, "Run ID:   %s", snap.RunID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pr, err := probe.Probe(ctx, cfg.FFprobePath, out)
	if err != nil {
		log.Debug(cfg.Verbose, "ffprobe skipped: %v", err)
		return
	}
	log.Info("Probed:   %s", probeLine(pr))
}

// preflight validates and scans the input, then checks that ffmpeg and
// libx264 work. Input errors are reported before any ffmpeg process starts;
// dry runs skip the tool check.
func preflight(cfg *config.Config, sess *session.Session, params session.Params) (pipeline.Request, error) {
	req, err := sess.Plan(params)
	if err != nil {
		return pipeline.Request{}, err
	}
	if cfg.DryRun {
		return req, nil
	}
	if err := check.CheckDeps(cfg); err != nil {
		return pipeline.Request{}, err
	}
	return req, nil
}

// probeLine renders what ffprobe saw in the written file.
func probeLine(pr *probe.Result) string {
	dur := display.FormatSeconds(pr.Format.Duration)
	if pr.Video == nil {
		return dur + ", no video stream"
	}
	v := pr.Video
	return fmt.Sprintf("%s, %s, %s/%s, %d frames @ %.3g fps",
		dur, pr.Resolution(), v.Codec, v.PixFmt, v.NbFrames, pr.FrameRate())
}

// reportFailure shows a truncated notice on screen. The full text goes to
// the log file, and to the terminal as well when verbose.
func reportFailure(cfg *config.Config, log *logging.Logger, err error) {
	msg := err.Error()
	notice := display.Truncate(msg, noticeLimit)
	log.Error("%s", notice)
	if notice == msg {
		return
	}
	if cfg.Verbose {
		log.Debug(true, "Full error: %s", msg)
		return
	}
	log.Detail("Full error: %s", msg)
}

// exitCode maps error kinds to process exit status: 2 for user-correctable
// input, 130 for interruption, 1 otherwise.
func exitCode(err error) int {
	switch {
	case pipeline.IsValidation(err):
		return 2
	case errors.Is(err, pipeline.ErrInterrupted):
		return 130
	default:
		return 1
	}
}
