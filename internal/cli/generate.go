package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/tagchangelog/internal/changelog"
	"github.com/ariel-frischer/tagchangelog/internal/config"
	clierrors "github.com/ariel-frischer/tagchangelog/internal/errors"
	"github.com/ariel-frischer/tagchangelog/internal/git"
	"github.com/ariel-frischer/tagchangelog/internal/progress"
)

const maxWorkers = 64

// runGenerate validates the arguments, opens the repository and writes the changelog.
// All boundary errors are reported before any history is read.
func runGenerate(cmd *cobra.Command, opts *rootOptions, args []string) error {
	var remoteArg string
	if len(args) == 2 {
		remoteArg = args[1]
		if err := config.ValidateRemoteURL(remoteArg); err != nil {
			return clierrors.InvalidRemoteURL(remoteArg)
		}
	}

	if cmd.Flags().Changed("workers") && (opts.workers < 1 || opts.workers > maxWorkers) {
		return clierrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("--workers must be between 1 and %d, got %d", maxWorkers, opts.workers),
			cmd.UseLine(),
		)
	}

	// --debug covers opening the repository; debug from config or env starts after loading it.
	debugging := cmd.Flags().Changed("debug") && opts.debug
	if debugging {
		defer enableDebugLogging(cmd.ErrOrStderr())()
	}

	repo, err := openRepository(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, opts, repo.Root())
	if err != nil {
		return err
	}

	if cfg.Debug && !debugging {
		defer enableDebugLogging(cmd.ErrOrStderr())()
	}

	linkBase := resolveLinkBase(remoteArg, cfg.RemoteURL, repo.Root())

	headings, err := cfg.HeadingTable()
	if err != nil {
		return clierrors.ConfigInvalid(err)
	}

	spin := newSpinner(cmd, opts.plain)
	spin.Start("reading tags")

	g := changelog.NewGenerator(repo, linkBase,
		changelog.WithWorkers(cfg.Workers),
		changelog.WithUnreleased(cfg.Unreleased),
		changelog.WithHeadings(headings),
		changelog.WithProgress(func(w changelog.Window, index, total int) {
			spin.Update(fmt.Sprintf("reading %s (%d/%d)", w.Title, index+1, total))
		}),
	)

	var doc bytes.Buffer
	if err := g.Generate(cmd.Context(), &doc); err != nil {
		spin.Stop(false, "changelog generation failed")
		var noTags *changelog.NoTagsError
		switch {
		case errors.As(err, &noTags):
			return clierrors.NoTagsFound(repo.Root(), err)
		case errors.Is(err, context.Canceled):
			return clierrors.Interrupted()
		}
		return clierrors.GenerationFailed(err)
	}
	spin.Stop(true, "changelog generated")

	return writeOutput(cmd, opts.output, doc.Bytes())
}

// openRepository resolves the path argument and opens the repository there.
func openRepository(pathArg string) (*git.Repository, error) {
	path, err := config.ResolvePath(pathArg)
	if err != nil {
		return nil, clierrors.RepositoryNotFound(pathArg)
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, clierrors.RepositoryNotFound(pathArg)
	}

	repo, err := git.Open(path)
	if err != nil {
		return nil, clierrors.NotAGitRepository(path, err)
	}
	return repo, nil
}

// loadConfig loads the layered configuration and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, opts *rootOptions, repoRoot string) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		RepoPath:          repoRoot,
		ProjectConfigPath: opts.configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, configError(err)
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("unreleased") {
		cfg.Unreleased = opts.unreleased
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	return cfg, nil
}

// configError reports YAML syntax errors as parse errors and everything else as invalid values.
func configError(err error) *clierrors.CLIError {
	var verr *config.ValidationError
	if errors.As(err, &verr) && verr.Line > 0 {
		return clierrors.ConfigParseError(verr.FilePath, err)
	}
	return clierrors.ConfigInvalid(err)
}

// resolveLinkBase picks the commit link base: the argument, then config, then the repository itself.
// The repository fallback is used as is; only user-supplied URLs are validated.
func resolveLinkBase(remoteArg, configured, repoRoot string) string {
	if remoteArg != "" {
		return remoteArg
	}
	if configured != "" {
		return configured
	}
	return "file://" + filepath.ToSlash(repoRoot)
}

// writeOutput writes the document to the --output file, or to stdout.
func writeOutput(cmd *cobra.Command, output string, doc []byte) error {
	if output == "" {
		if _, err := cmd.OutOrStdout().Write(doc); err != nil {
			return clierrors.GenerationFailed(err)
		}
		return nil
	}

	if err := os.WriteFile(output, doc, 0o644); err != nil {
		return clierrors.FileNotWritable(output, err)
	}
	return nil
}

// newSpinner shows progress on stderr only when stderr is a terminal.
func newSpinner(cmd *cobra.Command, plain bool) *progress.Spinner {
	caps := progress.TerminalCapabilities{}
	if f, ok := cmd.ErrOrStderr().(*os.File); ok && !plain {
		caps = progress.DetectTerminalCapabilities(f)
	}
	return progress.NewSpinner(cmd.ErrOrStderr(), caps)
}
