package pipeline

import (
	"fmt"
	"os"
)

// Summary describes a finished output file for the completion report.
type Summary struct {
	OutputPath string
	Bytes      int64
	Frames     int
	FPS        int
}

// Duration returns the computed video length in seconds (frames / fps).
func (s Summary) Duration() float64 {
	if s.FPS <= 0 {
		return 0
	}
	return float64(s.Frames) / float64(s.FPS)
}

// Summarize stats outputPath and pairs its size with the frame count and
// rate the video was built with.
func Summarize(outputPath string, frames, fps int) (Summary, error) {
	fi, err := os.Stat(outputPath)
	if err != nil {
		return Summary{}, fmt.Errorf("stat output: %w", err)
	}
	return Summary{OutputPath: outputPath, Bytes: fi.Size(), Frames: frames, FPS: fps}, nil
}
