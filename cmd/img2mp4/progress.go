package main

import (
	"fmt"
	"io"

	"github.com/backmassage/img2mp4/internal/display"
	"github.com/backmassage/img2mp4/internal/logging"
)

const (
	barWidth = 40
	logStep  = 10 // Non-TTY: log every 10%.
)

// progressView renders encode progress. On a terminal it redraws a single
// bar line in place; otherwise it logs one line per logStep percent.
type progressView struct {
	w      io.Writer
	log    *logging.Logger
	tty    bool
	drawn  bool
	logged int
}

func newProgressView(w io.Writer, log *logging.Logger, tty bool) *progressView {
	return &progressView{w: w, log: log, tty: tty, logged: -1}
}

func (v *progressView) Update(percent int) {
	if v.tty {
		fmt.Fprint(v.w, "\r"+display.ProgressBar(percent, barWidth))
		v.drawn = true
		return
	}
	step := percent / logStep * logStep
	if step > v.logged {
		v.logged = step
		v.log.Info("Progress: %d%%", step)
	}
}

// Done ends the bar line so later log output starts on a fresh line.
func (v *progressView) Done() {
	if v.tty && v.drawn {
		fmt.Fprintln(v.w)
		v.drawn = false
	}
}
