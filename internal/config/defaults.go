package config

import "github.com/ariel-frischer/tagchangelog/internal/changelog"

// GetDefaultConfigTemplate returns a commented config template
// that documents every available option.
func GetDefaultConfigTemplate() string {
	return `# tagchangelog configuration
# Project file: .tagchangelog.yml at the repository root
# User file:    ~/.config/tagchangelog/config.yml

remote_url: ""          # Commit link base; empty links to file://<repo-path>
workers: 4              # Ranges classified and rendered at once (1-64)
unreleased: false       # Add an "Unreleased" section for commits after the newest tag
debug: false            # Print [git] and [changelog] debug lines to stderr

# Relabel known commit types (chore docs feat fix other perf refactor revert style test)
headings: {}
#  feat: Features
#  fix: Fixes
`
}

// GetDefaults returns the default configuration values as a map.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"remote_url": "",
		"workers":    changelog.DefaultWorkers,
		"unreleased": false,
		"debug":      false,
	}
}
