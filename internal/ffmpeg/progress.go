package ffmpeg

import (
	"strconv"
	"strings"
)

const frameMarker = "frame="

// ParseFrame extracts the frame counter from an ffmpeg stats line such as
// "frame=   42 fps=0.0 q=28.0 size= 256kB time=00:00:01.68 ...".
// It reports ok=false for lines without a marker or with an unparseable
// value; such lines are expected and must simply be skipped.
func ParseFrame(line string) (frame int, ok bool) {
	idx := strings.Index(line, frameMarker)
	if idx < 0 {
		return 0, false
	}
	fields := strings.Fields(line[idx+len(frameMarker):])
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Tracker converts frame counters into a coarse percentage of total frames.
// Reported values never decrease and are capped at 100.
type Tracker struct {
	total int
	last  int
}

// NewTracker returns a tracker for a run of total input frames.
func NewTracker(total int) *Tracker {
	return &Tracker{total: total, last: -1}
}

// Update records a frame counter and returns the new percentage with
// changed=true only when it is strictly greater than the last one reported.
func (t *Tracker) Update(frame int) (percent int, changed bool) {
	if t.total <= 0 {
		return t.Last(), false
	}
	pct := frame * 100 / t.total
	if pct > 100 {
		pct = 100
	}
	if pct <= t.last {
		return t.last, false
	}
	t.last = pct
	return pct, true
}

// Last returns the last reported percentage, or 0 before any update.
func (t *Tracker) Last() int {
	if t.last < 0 {
		return 0
	}
	return t.last
}
