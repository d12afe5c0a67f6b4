package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ariel-frischer/tagchangelog/internal/changelog"
	"github.com/ariel-frischer/tagchangelog/internal/cli/shared"
	"github.com/ariel-frischer/tagchangelog/internal/config"
	clierrors "github.com/ariel-frischer/tagchangelog/internal/errors"
)

// maxSubjectLine bounds a single stdin line read by classify.
const maxSubjectLine = 1024 * 1024

func newClassifyCmd(root *rootOptions) *cobra.Command {
	var (
		plain bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "classify [subject...]",
		Short: "Show how commit subjects are classified",
		Long: `Show the type, category and section heading each commit subject gets.

Subjects are taken from the arguments, or one per line from stdin when no
arguments are given. Output is tab-separated (type, category, heading,
subject) when --plain is set or stdout is not a terminal.`,
		Example: `  # Check a single subject
  tagchangelog classify "feat(cli): add --output"

  # Check the subjects of the last 20 commits
  git log -20 --format=%s | tagchangelog classify`,
		GroupID:      shared.GroupGenerate,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, root, args, plain, width)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Tab-separated output without colors or icons")
	cmd.Flags().IntVar(&width, "width", 0, "Maximum line width (0 = terminal width)")
	return cmd
}

func runClassify(cmd *cobra.Command, root *rootOptions, args []string, plain bool, width int) error {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: root.configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return configError(err)
	}
	headings, err := cfg.HeadingTable()
	if err != nil {
		return clierrors.ConfigInvalid(err)
	}

	if width < 0 {
		return clierrors.NewArgumentError(
			fmt.Sprintf("--width must not be negative, got %d", width),
			"Pass 0 to use the terminal width",
		)
	}

	subjects := args
	if len(subjects) == 0 {
		subjects, err = readLines(cmd.InOrStdin())
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "reading subjects from stdin")
		}
	}

	out := cmd.OutOrStdout()
	opts := changelog.FormatOptions{
		Plain:    plain || !isTerminal(out),
		MaxWidth: width,
	}
	if err := changelog.FormatClassifications(subjects, headings, out, opts); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing classifications")
	}
	return nil
}

// readLines returns the lines of r without their line endings.
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSubjectLine)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning input: %w", err)
	}
	return lines, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
