package progress

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps TerminalCapabilities
		want ProgressSymbols
	}{
		"unicode terminal": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii terminal": {
			caps: TerminalCapabilities{IsTTY: true},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestDetectTerminalCapabilities_NotATerminal(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "stderr")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	caps := DetectTerminalCapabilities(f)
	assert.False(t, caps.IsTTY)
	assert.False(t, caps.SupportsColor)
	assert.False(t, caps.SupportsUnicode)
	assert.Zero(t, caps.Width)
}

func TestSpinner_DisabledWritesNothing(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSpinner(&buf, TerminalCapabilities{})
	s.Start("reading v1.0.0")
	s.Update("reading v0.9.0")
	s.Stop(true, "done")

	assert.Empty(t, buf.String())
}

func TestSpinner_StopPrintsFinalLine(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		success bool
		want    string
	}{
		"success": {success: true, want: "[OK] 3 ranges\n"},
		"failure": {success: false, want: "[FAIL] 3 ranges\n"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := NewSpinner(&buf, TerminalCapabilities{IsTTY: true})
			s.Start("reading")
			s.Update("reading v1.0.0")
			s.Stop(tt.success, "3 ranges")

			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
