// Package pipeline locates the images under a directory tree and turns an
// ordered image set into a single MP4 by driving one ffmpeg run.
//
// Discover produces the ordered image set. Run validates a Request, writes
// the transient concat manifest next to the output, executes ffmpeg, reports
// monotonic progress percentages and verifies the output exists. The
// manifest is removed on every exit path.
package pipeline
