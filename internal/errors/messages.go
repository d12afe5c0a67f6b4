package errors

import "fmt"

// Common error messages for the tagchangelog CLI.
// These templates ensure consistent, actionable error messages.

const usageLine = "tagchangelog [flags] <repo-path> [remote-url]"

// MissingRepositoryPath creates an error for a missing repository path argument.
func MissingRepositoryPath() *CLIError {
	return NewArgumentErrorWithUsage(
		"repository path is required",
		usageLine,
		"Pass the path of a local git repository",
		"Example: tagchangelog . https://github.com/org/repo/commit",
	)
}

// RepositoryNotFound creates an error when the repository path does not exist.
func RepositoryNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("repository path not found: %s", path),
		"Check that the path is correct",
		"Relative paths are resolved from the current directory",
	)
}

// NotAGitRepository creates an error when the path is not inside a git repository.
func NotAGitRepository(path string, err error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("not a git repository: %s", path),
		Remediation: []string{
			"Initialize with: git init",
			"Or pass the path of an existing repository",
		},
		Cause: err,
	}
}

// InvalidRemoteURL creates an error for a commit link base that is not a URL.
func InvalidRemoteURL(raw string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid remote URL: %q", raw),
		usageLine,
		"The remote URL needs a scheme, e.g. https://github.com/org/repo/commit",
		"Omit it to link to file://<repo-path>",
	)
}

// NoTagsFound creates an error when the repository has no tags to build ranges from.
func NoTagsFound(path string, err error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("no tags found in %s", path),
		Remediation: []string{
			"Create a release tag with: git tag v0.1.0",
			"Or pass --unreleased to list all commits under \"Unreleased\"",
		},
		Cause: err,
	}
}

// ConfigParseError creates an error for a config file that cannot be parsed.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config file: %s", path),
		"Check the file for YAML or JSON syntax errors",
		"Remove the file to fall back to defaults",
	)
}

// ConfigInvalid creates an error for configuration values that fail validation.
func ConfigInvalid(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"workers must be between 1 and 64",
		"headings may only relabel known commit types",
		"remote_url must be an absolute URL",
	)
}

// FileNotWritable creates an error when the output file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}

// GenerationFailed creates an error when reading history or rendering fails.
func GenerationFailed(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"changelog generation failed",
		"Re-run with --debug to see each git operation",
	)
}

// Interrupted creates an error when the run is cancelled before output is written.
func Interrupted() *CLIError {
	return NewRuntimeError(
		"interrupted before the changelog was written",
		"No output was written; re-run the command",
	)
}

// ConfigExists creates an error when init would overwrite an existing config file.
func ConfigExists(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file already exists: %s", path),
		"Pass --force to overwrite it with the defaults",
	)
}
