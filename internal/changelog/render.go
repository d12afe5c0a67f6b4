package changelog

import (
	"fmt"
	"io"
)

// RenderMarkdown writes the changelog document for the given ranges in order.
// Consecutive ranges are separated by one blank line.
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(ranges []Range, w io.Writer) error {
	for i := range ranges {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := RenderRange(&ranges[i], w); err != nil {
			return fmt.Errorf("rendering range %s: %w", ranges[i].EndTag, err)
		}
	}
	return nil
}

// RenderRange writes a single range: its "##" heading followed by every
// non-empty section.
func RenderRange(r *Range, w io.Writer) error {
	if _, err := io.WriteString(w, formatRangeHeader(r)+"\n"); err != nil {
		return err
	}

	for i := range r.Sections {
		if len(r.Sections[i].Commits) == 0 {
			continue
		}
		if err := renderSection(&r.Sections[i], r.LinkBase, w); err != nil {
			return err
		}
	}
	return nil
}

// formatRangeHeader formats the range heading line.
func formatRangeHeader(r *Range) string {
	return fmt.Sprintf("## %s (%s)", r.EndTag, r.Date)
}

// renderSection writes a blank line, the "###" heading and one bullet per commit.
func renderSection(s *Section, linkBase string, w io.Writer) error {
	if _, err := io.WriteString(w, "\n### "+s.Heading+"\n"); err != nil {
		return err
	}

	for _, c := range s.Commits {
		if _, err := io.WriteString(w, formatBullet(c, linkBase)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// formatBullet formats one commit line. Free-text commits carry no category label.
func formatBullet(c ClassifiedCommit, linkBase string) string {
	link := fmt.Sprintf("[%s](%s/%s)", c.ShortID, linkBase, c.LongID)
	if c.Category == Empty {
		return fmt.Sprintf("* %s %s", c.Subject, link)
	}
	return fmt.Sprintf("* **%s**:%s %s", c.Category, c.Subject, link)
}
