package display

import (
	"fmt"
	"strings"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatSeconds renders a video duration in seconds with one decimal, e.g. "4.0 s".
func FormatSeconds(sec float64) string {
	return fmt.Sprintf("%.1f s", sec)
}

// Truncate shortens msg to at most limit runes, appending "..." when cut.
// Used for on-screen failure notices; the log keeps the full message.
func Truncate(msg string, limit int) string {
	r := []rune(msg)
	if limit < 0 || len(r) <= limit {
		return msg
	}
	return string(r[:limit]) + "..."
}

// ProgressBar renders a fixed-width bar like "[#####-----]  50%".
// Percent is clamped to [0, 100].
func ProgressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if width < 1 {
		width = 1
	}
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]" +
		fmt.Sprintf(" %3d%%", percent)
}
