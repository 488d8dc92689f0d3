package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file, following
// the XDG Base Directory Specification via os.UserConfigDir:
//   - Linux: ~/.config/relcut/config.yml
//   - macOS: ~/Library/Application Support/relcut/config.yml
//   - Windows: %APPDATA%\relcut\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relcut", "config.yml"), nil
}

// ProjectConfigPaths returns the project-level config candidates in lookup
// order, relative to the current directory.
func ProjectConfigPaths() []string {
	return []string{".relcut.yml", ".relcut.json"}
}
