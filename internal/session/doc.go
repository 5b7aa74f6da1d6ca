// Package session owns the state of one interactive encoding session:
// parameter validation, image scanning, at most one background run, and the
// typed event stream the foreground consumes. It replaces ad-hoc shared
// state between the front end and the worker.
package session
