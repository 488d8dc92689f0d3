package config

// Defaults returns the default configuration values.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog": "CHANGELOG.md",
		// version_file: the artifact carrying the VERSION = "..." line.
		// Defaults to the conventional Python module; override per project.
		"version_file":   "version.py",
		"main_branch":    "master",
		"release_branch": "latest",
		"tag_prefix":     "v",
	}
}

// GetDefaultConfigTemplate returns the commented config template written by
// `relcut init`.
func GetDefaultConfigTemplate() string {
	return `# relcut configuration
changelog: CHANGELOG.md        # Changelog with a "## Unreleased" section
version_file: version.py       # File containing VERSION = "..."
main_branch: master            # Branch named in the push reminder
release_branch: latest         # Branch force-moved to the release commit
tag_prefix: v                  # Tag name becomes {tag_prefix}{version}
`
}
