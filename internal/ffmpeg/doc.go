// Package ffmpeg wraps the external ffmpeg binary for image-sequence encoding.
//
// It writes the concat-demuxer manifest, builds the fixed libx264 argument
// list, runs the process while streaming its stderr line by line, turns
// "frame=" stats lines into percentages, and keeps a tail of diagnostic
// output for failure messages. Cancelling the context passed to [Execute]
// kills ffmpeg together with any processes it spawned.
package ffmpeg
