// Package terminal reflects the countdown in the terminal window title
// when no TUI owns the screen.
package terminal

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/x/term"
	"github.com/muesli/termenv"
	"github.com/xvierd/pomodoro-cli/internal/ports"
)

// TitleSink writes window title escape sequences to an output.
type TitleSink struct {
	mu     sync.Mutex
	output *termenv.Output
}

// Ensure TitleSink implements ports.TitleSink.
var _ ports.TitleSink = (*TitleSink)(nil)

// NewTitleSink returns a sink writing to w.
func NewTitleSink(w io.Writer) *TitleSink {
	return &TitleSink{output: termenv.NewOutput(w)}
}

// StderrTitleSink returns a sink on stderr, or nil when stderr is not a
// terminal.
func StderrTitleSink() *TitleSink {
	if !term.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	return NewTitleSink(os.Stderr)
}

// SetTitle sets the window title.
func (s *TitleSink) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output.SetWindowTitle(title)
}
