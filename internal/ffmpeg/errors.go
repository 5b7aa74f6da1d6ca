package ffmpeg

import (
	"regexp"
	"strings"
)

// Pre-compiled regexes for recognizing common ffmpeg failures in stderr and
// attaching an actionable hint to the failure message.
var (
	reStatsLine = regexp.MustCompile(`^\s*frame=\s*\S+`)

	reOddDimensions = regexp.MustCompile(
		`(?i)(width|height) not divisible by 2`)

	reUnreadableInput = regexp.MustCompile(
		`(?i)Invalid data found when processing input|` +
			`Impossible to open|` +
			`No such file or directory|` +
			`Could not find codec parameters`)

	reEncoderMissing = regexp.MustCompile(
		`(?i)Unknown encoder|Encoder \S+ not found`)
)

// IsStatsLine reports whether line is a periodic "frame=" stats line rather
// than a diagnostic message.
func IsStatsLine(line string) bool {
	return reStatsLine.MatchString(line)
}

// MatchOddDimensions reports whether stderr shows yuv420p rejecting odd sizes.
func MatchOddDimensions(stderr string) bool {
	return reOddDimensions.MatchString(stderr)
}

// MatchUnreadableInput reports whether stderr shows an image that could not be read.
func MatchUnreadableInput(stderr string) bool {
	return reUnreadableInput.MatchString(stderr)
}

// MatchEncoderMissing reports whether the ffmpeg build lacks the encoder.
func MatchEncoderMissing(stderr string) bool {
	return reEncoderMissing.MatchString(stderr)
}

// Hint returns a short, user-facing explanation for a recognized failure,
// or "" when nothing matches. Patterns are checked in a fixed order.
func Hint(stderr string) string {
	switch {
	case MatchEncoderMissing(stderr):
		return "this ffmpeg build has no libx264 encoder"
	case MatchOddDimensions(stderr):
		return "image width and height must be even for yuv420p output"
	case MatchUnreadableInput(stderr):
		return "one of the input images could not be read"
	}
	return ""
}

// tail keeps the last n diagnostic lines written to it.
type tail struct {
	n     int
	lines []string
}

func newTail(n int) *tail { return &tail{n: n} }

func (t *tail) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if len(t.lines) == t.n {
		copy(t.lines, t.lines[1:])
		t.lines = t.lines[:t.n-1]
	}
	t.lines = append(t.lines, line)
}

func (t *tail) String() string { return strings.Join(t.lines, "\n") }
