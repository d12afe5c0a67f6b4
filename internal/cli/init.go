package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/tagchangelog/internal/cli/shared"
	"github.com/ariel-frischer/tagchangelog/internal/config"
	clierrors "github.com/ariel-frischer/tagchangelog/internal/errors"
	"github.com/ariel-frischer/tagchangelog/internal/git"
)

func newInitCmd() *cobra.Command {
	var user, force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a commented config file with the defaults",
		Long: `Write a commented config file documenting every option.

By default the file is .tagchangelog.yml in the given directory (the
current directory when omitted), or at the root of the git repository
that directory belongs to. With --user it is the user-level file
~/.config/tagchangelog/config.yml instead.

An existing file is left unchanged unless --force is passed.`,
		Example: `  # Project config in the current repository
  tagchangelog init

  # User-level config shared by every repository
  tagchangelog init --user

  # Reset a project config to the defaults
  tagchangelog init --force ~/src/app`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
			}
			return nil
		},
		GroupID:      shared.GroupSetup,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := initTarget(args, user)
			if err != nil {
				return err
			}
			return writeConfigTemplate(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Write the user-level config instead of the project config")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}

// initTarget returns the config file path init writes to.
func initTarget(args []string, user bool) (string, error) {
	if user {
		if len(args) > 0 {
			return "", clierrors.NewArgumentError(
				"--user does not take a path",
				"Run tagchangelog init --user without arguments",
			)
		}
		path, err := config.UserConfigPath()
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Prerequisite, "locating user config directory")
		}
		return path, nil
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	abs, err := config.ResolvePath(dir)
	if err != nil {
		return "", clierrors.Wrap(err, clierrors.Argument)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", clierrors.RepositoryNotFound(dir)
	}

	// The project config is read from the repository root, so write it there.
	if repo, err := git.Open(abs); err == nil {
		abs = repo.Root()
	}

	yamlPath, _ := config.ProjectConfigPaths(abs)
	return yamlPath, nil
}

// writeConfigTemplate writes the default template to path.
func writeConfigTemplate(cmd *cobra.Command, path string, force bool) error {
	_, statErr := os.Stat(path)
	exists := statErr == nil
	if exists && !force {
		return clierrors.ConfigExists(path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.FileNotWritable(path, err)
	}

	verb := "created"
	if exists {
		verb = "overwritten"
	}
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s Config %s at %s\n", green("✓"), verb, dim(path))
	return nil
}
