// Package progress reports changelog generation progress on stderr.
// Standard output carries the changelog itself, so nothing here writes to it.
package progress

// TerminalCapabilities describes what the progress stream can display.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// ProgressSymbols is the symbol set chosen for the terminal.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int // index into spinner.CharSets
}
