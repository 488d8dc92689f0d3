// Package config provides hierarchical configuration for relcut using koanf.
// Values are loaded with priority: environment variables > project config
// (.relcut.yml or .relcut.json) > user config (~/.config/relcut/config.yml)
// > defaults. The project file parser is selected by extension, so YAML and
// JSON projects are both supported.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the release workflow settings.
type Config struct {
	// Changelog is the path to the changelog file, relative to the
	// working directory.
	Changelog string `koanf:"changelog"`
	// VersionFile is the path to the file carrying the VERSION = "..."
	// declaration.
	VersionFile string `koanf:"version_file"`
	// MainBranch names the branch the operator is expected to push.
	// Only used in the final reminder; the release commits to whatever
	// branch is checked out.
	MainBranch string `koanf:"main_branch"`
	// ReleaseBranch is the branch force-moved to the release commit.
	ReleaseBranch string `koanf:"release_branch"`
	// TagPrefix is prepended to the version when naming the tag.
	TagPrefix string `koanf:"tag_prefix"`
}

// Load loads configuration from defaults, user config, project config, and
// environment. explicitPath, when non-empty, replaces the project config
// file lookup (the file must then exist).
func Load(explicitPath string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	if userPath, err := UserConfigPath(); err == nil && fileExists(userPath) {
		if err := k.Load(file.Provider(userPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading user config %s: %w", userPath, err)
		}
	}

	if err := loadProjectConfig(k, explicitPath); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("RELCUT_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// loadProjectConfig loads the project-level config file. With an explicit
// path the file is required; otherwise the first of .relcut.yml and
// .relcut.json that exists is used, and having neither is fine.
func loadProjectConfig(k *koanf.Koanf, explicitPath string) error {
	path := explicitPath
	if path == "" {
		for _, candidate := range ProjectConfigPaths() {
			if fileExists(candidate) {
				path = candidate
				break
			}
		}
		if path == "" {
			return nil
		}
	} else if !fileExists(path) {
		return fmt.Errorf("config file not found: %s", path)
	}

	if err := k.Load(file.Provider(path), parserForPath(path)); err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	return nil
}

// parserForPath selects the koanf parser by file extension.
func parserForPath(path string) koanf.Parser {
	if filepath.Ext(path) == ".json" {
		return json.Parser()
	}
	return yaml.Parser()
}

// envTransform converts environment variable names to config keys.
// Example: RELCUT_MAIN_BRANCH -> main_branch
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RELCUT_"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
