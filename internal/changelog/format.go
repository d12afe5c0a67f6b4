package changelog

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// TypeStyle defines the color and icon for a commit type in terminal output.
type TypeStyle struct {
	Color *color.Color
	Icon  string
}

// typeStyles maps known commit types to their terminal styling.
var typeStyles = map[string]TypeStyle{
	"feat":     {Color: color.New(color.FgGreen), Icon: "✓"},
	"fix":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"docs":     {Color: color.New(color.FgBlue), Icon: "✎"},
	"perf":     {Color: color.New(color.FgMagenta), Icon: "»"},
	"refactor": {Color: color.New(color.FgCyan), Icon: "~"},
	"revert":   {Color: color.New(color.FgRed), Icon: "↺"},
	"style":    {Color: color.New(color.FgCyan), Icon: "*"},
	"test":     {Color: color.New(color.FgBlue), Icon: "◆"},
	"chore":    {Color: color.New(color.Faint), Icon: "·"},
	"other":    {Color: color.New(color.Faint), Icon: "·"},
}

var (
	unknownStyle  = TypeStyle{Color: color.New(color.FgRed, color.Bold), Icon: "?"}
	freeTextStyle = TypeStyle{Color: color.New(color.FgWhite), Icon: "-"}
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons; print tab-separated fields
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatClassifications classifies each subject line and writes one line per
// subject. Plain output is "type<TAB>category<TAB>heading<TAB>subject".
func FormatClassifications(subjects []string, h Headings, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for _, subject := range subjects {
		c := Classify(subject)
		if err := writeClassification(c, h, w, opts, width); err != nil {
			return fmt.Errorf("formatting %q: %w", subject, err)
		}
	}
	return nil
}

// writeClassification writes one classified subject.
func writeClassification(c Classification, h Headings, w io.Writer, opts FormatOptions, width int) error {
	heading := h.Lookup(c.Type)

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Type, c.Category, heading, c.Subject)
		return err
	}

	style := styleFor(c.Type, h)
	colored := style.Color.SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	label := c.Type
	if c.Type == Empty {
		label = "(free text)"
	} else if c.Category != Global {
		label = fmt.Sprintf("%s(%s)", c.Type, c.Category)
	}

	prefix := fmt.Sprintf("%s %s %s ", style.Icon, label, heading)
	subject := truncateText(c.Subject, width-utf8.RuneCountInString(prefix)-1)

	_, err := fmt.Fprintf(w, "%s %s %s %s\n", colored(style.Icon), colored(label), dim(heading), subject)
	return err
}

// styleFor picks the style for a commit type: known, free text or unknown.
func styleFor(commitType string, h Headings) TypeStyle {
	if commitType == Empty {
		return freeTextStyle
	}
	if style, ok := typeStyles[commitType]; ok && h.Has(commitType) {
		return style
	}
	return unknownStyle
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// truncateText truncates text to maxLen runes, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if maxLen < 4 || utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLen-3]) + "..."
}
