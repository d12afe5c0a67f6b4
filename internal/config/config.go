// Package config provides layered configuration for tagchangelog using koanf.
// Configuration is loaded with priority: environment variables > project config
// (.tagchangelog.yml or .tagchangelog.json at the repository root) > user config
// (~/.config/tagchangelog/config.yml) > defaults. Command-line flags are applied
// on top by the caller.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/tagchangelog/internal/changelog"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "TAGCHANGELOG_"

// Configuration represents the tagchangelog configuration
type Configuration struct {
	// RemoteURL is the commit link base. Empty means file://<repository root>.
	RemoteURL string `koanf:"remote_url" validate:"omitempty,url"`
	// Workers bounds how many ranges are classified and rendered at once.
	Workers int `koanf:"workers" validate:"min=1,max=64"`
	// Unreleased adds a leading range for commits after the newest tag.
	Unreleased bool `koanf:"unreleased"`
	// Debug enables [git] and [changelog] debug output on stderr.
	Debug bool `koanf:"debug"`
	// Headings relabels known commit types, e.g. feat: Features.
	Headings map[string]string `koanf:"headings"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// RepoPath is the repository root searched for a project config.
	RepoPath string
	// ProjectConfigPath overrides the project config lookup (--config). The file must exist.
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: UserConfigPath()).
	UserConfigPath string
	// WarningWriter receives warnings about ignored files (default: os.Stderr)
	WarningWriter io.Writer
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts, warningWriter); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		_ = k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if it exists.
func loadUserConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "" {
		path, _ = UserConfigPath()
	}
	if !fileExists(path) {
		return nil
	}

	if err := loadFile(k, path); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project-level config.
// An explicit path must exist. Otherwise YAML is preferred over JSON at the
// repository root, with a warning when both are present.
func loadProjectConfig(k *koanf.Koanf, opts LoadOptions, warningWriter io.Writer) error {
	if opts.ProjectConfigPath != "" {
		if !fileExists(opts.ProjectConfigPath) {
			return &ValidationError{FilePath: opts.ProjectConfigPath, Message: "config file not found"}
		}
		if err := loadFile(k, opts.ProjectConfigPath); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		return nil
	}

	if opts.RepoPath == "" {
		return nil
	}

	yamlPath, jsonPath := ProjectConfigPaths(opts.RepoPath)
	yamlExists := fileExists(yamlPath)
	jsonExists := fileExists(jsonPath)

	switch {
	case yamlExists:
		if err := loadFile(k, yamlPath); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		if jsonExists {
			fmt.Fprintf(warningWriter, "Warning: %s ignored, using %s\n", jsonPath, yamlPath)
		}
	case jsonExists:
		if err := loadFile(k, jsonPath); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
	}
	return nil
}

// loadFile loads a YAML or JSON file, chosen by extension.
// YAML syntax is validated first so errors carry line and column.
func loadFile(k *koanf.Koanf, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return &ValidationError{FilePath: path, Message: err.Error()}
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// HeadingTable returns the default heading table with the configured relabels applied.
func (c *Configuration) HeadingTable() (changelog.Headings, error) {
	return changelog.DefaultHeadings().WithLabels(c.Headings)
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: TAGCHANGELOG_REMOTE_URL -> remote_url, TAGCHANGELOG_HEADINGS_FEAT -> headings.feat
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "headings_"); ok {
		return "headings." + rest
	}
	return key
}
