// Package clipboard copies finding locations to the system clipboard, or
// to the terminal through OSC52 where no system clipboard is reachable.
package clipboard

import (
	"io"

	atotto "github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/fwojciec/lintview"
)

var (
	_ lintview.Clipboard = System{}
	_ lintview.Clipboard = (*Terminal)(nil)
)

// System writes to the operating system clipboard.
type System struct{}

func (System) Copy(content string) error {
	return atotto.WriteAll(content)
}

// Terminal asks the terminal emulator to set its clipboard with an OSC52
// escape sequence. It works over SSH when the terminal supports it.
type Terminal struct {
	w    io.Writer
	tmux bool
}

// NewTerminal creates a clipboard writing escape sequences to w. Inside tmux
// the sequence is wrapped so tmux passes it through.
func NewTerminal(w io.Writer, tmux bool) *Terminal {
	return &Terminal{w: w, tmux: tmux}
}

func (t *Terminal) Copy(content string) error {
	seq := osc52.New(content)
	if t.tmux {
		seq = seq.Tmux()
	}
	_, err := seq.WriteTo(t.w)
	return err
}

// Detect returns the system clipboard when a clipboard utility is installed
// and a terminal clipboard writing to w otherwise.
func Detect(w io.Writer, tmux bool) lintview.Clipboard {
	if !atotto.Unsupported {
		return System{}
	}
	return NewTerminal(w, tmux)
}
