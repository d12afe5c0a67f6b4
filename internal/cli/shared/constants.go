// Package shared provides constants and types used across CLI subpackages.
package shared

import clierrors "github.com/ariel-frischer/tagchangelog/internal/errors"

// Exit codes for the tagchangelog CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates the changelog was written
	ExitSuccess = 0
	// ExitFailure indicates reading history or writing output failed
	ExitFailure = 1
	// ExitInvalidArguments indicates invalid arguments, flags or configuration
	ExitInvalidArguments = 3
	// ExitMissingDependency indicates the repository path is missing or not a git repository
	ExitMissingDependency = 4
)

// Command group IDs for help output.
const (
	GroupGenerate = "generate"
	GroupSetup    = "setup"
	GroupInfo     = "info"
)

// ExitCode maps an error to the process exit status.
// CLIErrors map by category; anything else is a generic failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument, clierrors.Configuration:
			return ExitInvalidArguments
		case clierrors.Prerequisite:
			return ExitMissingDependency
		}
	}
	return ExitFailure
}
