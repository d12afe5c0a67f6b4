package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Project config file names, looked up at the repository root.
const (
	ProjectConfigYAML = ".tagchangelog.yml"
	ProjectConfigJSON = ".tagchangelog.json"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/tagchangelog/config.yml
// - macOS: ~/Library/Application Support/tagchangelog/config.yml
// - Windows: %APPDATA%\tagchangelog\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tagchangelog", "config.yml"), nil
}

// ProjectConfigPaths returns the YAML and JSON project config paths under repoRoot.
func ProjectConfigPaths(repoRoot string) (yamlPath, jsonPath string) {
	return filepath.Join(repoRoot, ProjectConfigYAML), filepath.Join(repoRoot, ProjectConfigJSON)
}

// ResolvePath converts a raw path argument to an absolute path.
// It handles the following cases:
//   - "." : returns current working directory
//   - "~" or "~/...": expands tilde to user home directory
//   - Relative path: resolves against current working directory
//   - Absolute path: returns it cleaned
func ResolvePath(rawPath string) (string, error) {
	if rawPath == "~" || strings.HasPrefix(rawPath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		rawPath = filepath.Join(home, strings.TrimPrefix(rawPath, "~"))
	}

	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return absPath, nil
}
