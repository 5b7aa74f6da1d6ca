package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sync/errgroup"
)

const (
	tailLines = 20
	// waitDelay bounds how long Wait keeps stderr open after a cancelled
	// ffmpeg exits, in case a stray descendant still holds the pipe.
	waitDelay = 3 * time.Second
	maxLine   = 1 << 20
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string // Last diagnostic lines (stats lines excluded).
	Err    error
}

// Describe renders a one-line-plus-tail failure diagnostic: the process
// error, a hint for recognized failures, and the captured stderr tail.
func (r ExecResult) Describe() string {
	if r.Err == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.Err.Error())
	if h := Hint(r.Stderr); h != "" {
		b.WriteString(" (")
		b.WriteString(h)
		b.WriteString(")")
	}
	if r.Stderr != "" {
		b.WriteString("\n")
		b.WriteString(r.Stderr)
	}
	return b.String()
}

// Execute runs args (binary first) and calls onLine for every stderr line as
// it arrives, from a single goroutine, in output order. Both '\n' and '\r'
// end a line because ffmpeg redraws its stats line with carriage returns.
//
// Cancelling ctx kills the process tree; Execute returns only after the
// process has exited and stderr has been fully consumed.
func Execute(ctx context.Context, args []string, onLine func(string)) ExecResult {
	if len(args) == 0 {
		return ExecResult{Err: fmt.Errorf("ffmpeg: empty command")}
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Cancel = func() error { return killTree(cmd.Process) }
	cmd.WaitDelay = waitDelay

	pr, pw := io.Pipe()
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		return ExecResult{Err: fmt.Errorf("start %s: %w", args[0], err)}
	}

	diag := newTail(tailLines)
	var waitErr error
	var g errgroup.Group

	g.Go(func() error {
		waitErr = cmd.Wait()
		return pw.Close()
	})

	g.Go(func() error {
		sc := bufio.NewScanner(pr)
		sc.Buffer(make([]byte, 64*1024), maxLine)
		sc.Split(scanLinesCR)
		for sc.Scan() {
			line := sc.Text()
			if onLine != nil {
				onLine(line)
			}
			if !IsStatsLine(line) {
				diag.add(line)
			}
		}
		if err := sc.Err(); err != nil {
			// Keep draining so the process's stderr copier never blocks.
			_, _ = io.Copy(io.Discard, pr)
			return err
		}
		return nil
	})

	scanErr := g.Wait()
	res := ExecResult{Stderr: diag.String(), Err: waitErr}
	if res.Err == nil && scanErr != nil {
		res.Err = fmt.Errorf("read ffmpeg output: %w", scanErr)
	}
	return res
}

// scanLinesCR is bufio.ScanLines extended to treat a lone '\r' as a line end.
func scanLinesCR(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		adv := i + 1
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			adv++
		}
		return adv, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// killTree kills every descendant of p, deepest first, and then p itself.
// Descendant discovery is best-effort; p is always killed.
func killTree(p *os.Process) error {
	if p == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if proc, err := process.NewProcessWithContext(ctx, int32(p.Pid)); err == nil {
		killDescendants(ctx, proc)
	}
	return p.Kill()
}

func killDescendants(ctx context.Context, proc *process.Process) {
	children, err := proc.ChildrenWithContext(ctx)
	if err != nil {
		return
	}
	for _, c := range children {
		killDescendants(ctx, c)
		_ = c.KillWithContext(ctx)
	}
}
