// Package config handles the .frontdesk directory each property gets in the
// directory the console is launched from: YAML configuration for the voice
// bridge and the optional dataset file, plus the logs directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontdeskDir is the name of the directory created in the project root.
const FrontdeskDir = ".frontdesk"

const defaultProjectConfigYAML = `# frontdesk console configuration
version: 1

# Display name shown in the console header.
hotel_name: Harborview Hotel

# HTTP bridge the voice transport posts events to.
bridge:
  enabled: true
  host: 127.0.0.1
  port: 7861

# Optional YAML dataset replacing the built-in demo property.
# dataset: data/property.yaml
`

// BridgeConfig models the bridge block of config.yaml.
type BridgeConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Host    string `yaml:"host,omitempty"`
	Port    int    `yaml:"port,omitempty"`
}

// ProjectConfig models .frontdesk/config.yaml.
type ProjectConfig struct {
	Version   int          `yaml:"version"`
	HotelName string       `yaml:"hotel_name"`
	Bridge    BridgeConfig `yaml:"bridge"`
	Dataset   string       `yaml:"dataset,omitempty"`
}

// Config holds the runtime configuration for the console.
type Config struct {
	// ProjectDir is the directory the console was launched from.
	ProjectDir string

	// FrontdeskProjectDir is ProjectDir/.frontdesk.
	FrontdeskProjectDir string

	Project ProjectConfig
}

// InitFrontdeskDir creates the .frontdesk directory structure and a default
// config file when none exists.
func InitFrontdeskDir(projectDir string) error {
	base := filepath.Join(projectDir, FrontdeskDir)
	dirs := []string{
		filepath.Join(base, "logs"),
		filepath.Join(base, "data"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(base, "config.yaml"))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}

// NewConfig loads the project configuration rooted at projectDir.
func NewConfig(projectDir string) (*Config, error) {
	projectDir = strings.TrimSpace(projectDir)
	if projectDir == "" {
		return nil, fmt.Errorf("config: project directory is required")
	}
	cfg := &Config{
		ProjectDir:          projectDir,
		FrontdeskProjectDir: filepath.Join(projectDir, FrontdeskDir),
	}
	project, err := loadProjectConfig(filepath.Join(cfg.FrontdeskProjectDir, "config.yaml"))
	if err != nil {
		return nil, err
	}
	cfg.Project = project
	return cfg, nil
}

func loadProjectConfig(path string) (ProjectConfig, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		raw = []byte(defaultProjectConfigYAML)
	} else if err != nil {
		return ProjectConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var project ProjectConfig
	if err := yaml.Unmarshal(raw, &project); err != nil {
		return ProjectConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if strings.TrimSpace(project.HotelName) == "" {
		project.HotelName = "Harborview Hotel"
	}
	return project, nil
}

// DatasetPath resolves the configured dataset file relative to the project
// directory; empty means "use the built-in seed".
func (c *Config) DatasetPath() string {
	if c == nil {
		return ""
	}
	path := strings.TrimSpace(c.Project.Dataset)
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectDir, path)
}

// LogPath returns the logbook file location.
func (c *Config) LogPath() string {
	if c == nil {
		return ""
	}
	return filepath.Join(c.FrontdeskProjectDir, "logs", "console.log")
}
