// Package display renders human-facing output: the banner, byte and
// duration formatting, the progress bar, and notice truncation.
package display

import (
	"fmt"
	"io"

	"github.com/backmassage/img2mp4/internal/term"
)

// PrintBanner prints the ASCII art banner in magenta when colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta.Sprint(` _                 ____                  _  _
(_)_ __ ___   __ _|___ \ _ __ ___  _ __ | || |
| | '_ `+"`"+` _ \ / _`+"`"+` | __) | '_ `+"`"+` _ \| '_ \| || |_
| | | | | | | (_| |/ __/| | | | | | |_) |__   _|
|_|_| |_| |_|\__, |_____|_| |_| |_| .__/   |_|
             |___/                |_|
`))
	fmt.Fprintln(w)
}
