package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner shows a one-line status while history is read.
// It is a no-op unless the capabilities report a terminal.
type Spinner struct {
	w       io.Writer
	s       *spinner.Spinner
	symbols ProgressSymbols
	enabled bool
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, caps TerminalCapabilities) *Spinner {
	symbols := SelectSymbols(caps)
	s := spinner.New(spinner.CharSets[symbols.SpinnerSet], spinnerInterval, spinner.WithWriter(w))

	return &Spinner{
		w:       w,
		s:       s,
		symbols: symbols,
		enabled: caps.IsTTY,
	}
}

// Start begins spinning with msg as the status text.
func (p *Spinner) Start(msg string) {
	if !p.enabled {
		return
	}
	p.s.Suffix = " " + msg
	p.s.Start()
}

// Update replaces the status text.
func (p *Spinner) Update(msg string) {
	if !p.enabled {
		return
	}
	p.s.Lock()
	p.s.Suffix = " " + msg
	p.s.Unlock()
}

// Stop halts the spinner and prints a final status line.
func (p *Spinner) Stop(success bool, msg string) {
	if !p.enabled {
		return
	}
	p.s.Stop()

	symbol := p.symbols.Checkmark
	if !success {
		symbol = p.symbols.Failure
	}
	fmt.Fprintf(p.w, "%s %s\n", symbol, msg)
}
