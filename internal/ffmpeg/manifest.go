package ffmpeg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FrameDuration returns the per-image display time in seconds for fps,
// formatted the way it is written to the manifest (shortest exact form).
func FrameDuration(fps int) string {
	return strconv.FormatFloat(1/float64(fps), 'f', -1, 64)
}

// WriteManifest writes the concat-demuxer listing for images to w: a
// "file '<abs path>'" line followed by a "duration <1/fps>" line per image,
// in the given order.
func WriteManifest(w io.Writer, images []string, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("manifest: frame rate must be positive (got %d)", fps)
	}
	dur := FrameDuration(fps)
	bw := bufio.NewWriter(w)
	for _, img := range images {
		abs, err := filepath.Abs(img)
		if err != nil {
			return fmt.Errorf("manifest: resolve %q: %w", img, err)
		}
		if _, err := fmt.Fprintf(bw, "file '%s'\nduration %s\n", quote(abs), dur); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteManifestFile creates (or truncates) path and writes the manifest.
func WriteManifestFile(path string, images []string, fps int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	if err := WriteManifest(f, images, fps); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// quote escapes a path for use inside single quotes in a concat script:
// each ' becomes '\'' (close quote, escaped quote, reopen quote).
func quote(path string) string {
	return strings.ReplaceAll(path, `'`, `'\''`)
}
