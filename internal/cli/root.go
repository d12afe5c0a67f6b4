// Package cli implements the tagchangelog command line.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/tagchangelog/internal/cli/shared"
	"github.com/ariel-frischer/tagchangelog/internal/cli/util"
	clierrors "github.com/ariel-frischer/tagchangelog/internal/errors"
)

// rootOptions holds the flag values of one command tree.
type rootOptions struct {
	configPath string
	debug      bool
	output     string
	unreleased bool
	workers    int
	plain      bool
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tagchangelog [flags] <repo-path> [remote-url]",
		Short: "Generate a Markdown changelog from git tags and commit subjects",
		Long: `Generate a Markdown changelog from git tags and commit subjects.

Commits between consecutive tags are grouped by their subject prefix
("feat(cli): add flag" is type feat, category cli) under a heading per
type, newest tag first. Subjects without a prefix are listed under "Other".

Each commit links to <remote-url>/<commit-id>. Without a remote URL the
links point at file://<repo-path>.

Configuration is read from .tagchangelog.yml in the repository,
~/.config/tagchangelog/config.yml and TAGCHANGELOG_* environment variables.`,
		Example: `  # Changelog of the current repository with local links
  tagchangelog .

  # Link commits to GitHub
  tagchangelog ~/src/app https://github.com/org/app/commit

  # Include commits after the newest tag and write to a file
  tagchangelog --unreleased -o CHANGELOG.md .`,
		Args:          validateRootArgs,
		Version:       util.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	cmd.SetVersionTemplate("tagchangelog {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine())
	})

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Project config file (default: <repo-path>/.tagchangelog.yml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Print git and changelog debug lines to stderr")

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the changelog to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.unreleased, "unreleased", false, "Add an \"Unreleased\" section for commits after the newest tag")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Ranges classified and rendered at once, 1-64 (default from config: 4)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Disable the progress spinner and colors")

	cmd.AddGroup(
		&cobra.Group{ID: shared.GroupGenerate, Title: "Changelog Commands:"},
		&cobra.Group{ID: shared.GroupSetup, Title: "Setup:"},
		&cobra.Group{ID: shared.GroupInfo, Title: "Information:"},
	)
	cmd.AddCommand(newClassifyCmd(opts))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(util.NewVersionCmd())

	return cmd
}

// validateRootArgs requires a repository path and at most one remote URL.
func validateRootArgs(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return clierrors.MissingRepositoryPath()
	case len(args) > 2:
		return clierrors.NewArgumentErrorWithUsage(
			"too many arguments",
			cmd.UseLine(),
			"Pass the repository path and, optionally, the remote URL",
		)
	}
	return nil
}

// Execute runs the root command and reports any error on stderr.
// The returned error maps to an exit status through shared.ExitCode.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return execute(ctx, rootCmd)
}

func execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		clierrors.FprintError(cmd.ErrOrStderr(), err)
	}
	return err
}
