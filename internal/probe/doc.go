// Package probe inspects an encoded video with a single ffprobe JSON call.
// It is used after a successful run to report what was actually written:
// container duration, codec, pixel format, resolution, frame count and rate.
package probe
