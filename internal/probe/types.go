package probe

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	FormatName string
	Duration   float64 // Seconds.
	Size       int64
	BitRate    int64
}

// VideoStream holds the parsed properties of a single video stream.
type VideoStream struct {
	Codec        string
	PixFmt       string
	Width        int
	Height       int
	NbFrames     int
	AvgFrameRate string
}

// Result is the parsed output of a single ffprobe JSON call.
// Video is the first video stream (nil if none).
type Result struct {
	Format FormatInfo
	Video  *VideoStream
}

// Resolution returns "WxH" for the video stream, or "unknown".
func (r *Result) Resolution() string {
	if r.Video == nil || r.Video.Width <= 0 || r.Video.Height <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", r.Video.Width, r.Video.Height)
}

// FrameRate parses the video stream's avg_frame_rate ("25/1", "30000/1001").
// Returns 0 when absent or malformed.
func (r *Result) FrameRate() float64 {
	if r.Video == nil {
		return 0
	}
	num, den, ok := strings.Cut(r.Video.AvgFrameRate, "/")
	if !ok {
		return parseFloat(num)
	}
	n, d := parseFloat(num), parseFloat(den)
	if d == 0 {
		return 0
	}
	return n / d
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
