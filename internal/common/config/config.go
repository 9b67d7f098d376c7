package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrBuildDirNotSet = errors.New("build directory is not configured")
)

// Defaults mirroring the traditional aurman settings
const (
	DefaultSuProgram = "sudo"
	DefaultBuildDir  = "/tmp/aurmate"
	DefaultLogPath   = "/tmp/aurmate.log"
	DefaultAURURL    = "https://aur.archlinux.org"
)

// Config represents the application configuration
type Config struct {
	Pacman  PacmanConfig  `yaml:"pacman"`
	AUR     AURConfig     `yaml:"aur"`
	Install InstallConfig `yaml:"install"`
	Log     LogConfig     `yaml:"log"`
}

// PacmanConfig holds settings for invoking the native package manager
type PacmanConfig struct {
	// SuProgram is the privilege escalation program (sudo/doas)
	SuProgram string `yaml:"su_program"`
}

// AURConfig holds AUR endpoint settings
type AURConfig struct {
	URL string `yaml:"url"`
}

// InstallConfig holds settings for the install pipeline
type InstallConfig struct {
	// AutoConfirm skips interactive prompts and assumes yes
	AutoConfirm bool `yaml:"auto_confirm"`
	// BuildDir is where package sources are cloned and built
	BuildDir string `yaml:"build_dir"`
	// ReviewPkgbuild shows the PKGBUILD before every build
	ReviewPkgbuild bool `yaml:"review_pkgbuild"`
}

// LogConfig holds log file settings
type LogConfig struct {
	Path string `yaml:"path"`
}

// Default returns a configuration populated with default values
func Default() *Config {
	return &Config{
		Pacman:  PacmanConfig{SuProgram: DefaultSuProgram},
		AUR:     AURConfig{URL: DefaultAURURL},
		Install: InstallConfig{BuildDir: DefaultBuildDir},
		Log:     LogConfig{Path: DefaultLogPath},
	}
}

// ConfigPaths returns all possible config file paths in priority order
// 1. ~/.config/aurmate/config.yaml (XDG standard - priority)
// 2. ~/.aurmate/config.yaml (legacy fallback)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// Check XDG_CONFIG_HOME first, fallback to ~/.config
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "aurmate", "config.yaml"),
		filepath.Join(home, ".aurmate", "config.yaml"),
	}, nil
}

// DefaultConfigPath returns the default config file path (XDG standard)
func DefaultConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// FindConfigPath returns the first existing config file path
// Returns the default path if no config file exists yet
func FindConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	// No config exists, return default (XDG) path for creation
	return paths[0], nil
}

// Load reads configuration from the first available config file
// Priority: ~/.config/aurmate/config.yaml > ~/.aurmate/config.yaml
func Load() (*Config, error) {
	configPath, err := FindConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads configuration from a specific file path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Create default config
			cfg := Default()
			if saveErr := cfg.SaveTo(path); saveErr != nil {
				return nil, saveErr
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills in any fields left empty by the config file
func (c *Config) applyDefaults() {
	if c.Pacman.SuProgram == "" {
		c.Pacman.SuProgram = DefaultSuProgram
	}
	if c.AUR.URL == "" {
		c.AUR.URL = DefaultAURURL
	}
	if c.Install.BuildDir == "" {
		c.Install.BuildDir = DefaultBuildDir
	}
	if c.Log.Path == "" {
		c.Log.Path = DefaultLogPath
	}
}

// Save writes configuration to the default config file
func (c *Config) Save() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes configuration to a specific file path
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetBuildDir returns the build directory with ~ expanded
func (c *Config) GetBuildDir() (string, error) {
	if c.Install.BuildDir == "" {
		return "", ErrBuildDirNotSet
	}
	return expandHome(c.Install.BuildDir)
}

// UpgradeConfigPath returns the path of the upgrade ignore file, which
// lives next to the main config file.
func UpgradeConfigPath() (string, error) {
	configPath, err := FindConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(configPath), "upgrade.toml"), nil
}

// expandHome expands a leading ~ to the user home directory
func expandHome(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// String renders the effective configuration for the config command
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[pacman]\n")
	fmt.Fprintf(&b, "  SU program: %s\n", c.Pacman.SuProgram)
	fmt.Fprintf(&b, "[aur]\n")
	fmt.Fprintf(&b, "  URL: %s\n", c.AUR.URL)
	fmt.Fprintf(&b, "[install]\n")
	fmt.Fprintf(&b, "  Auto confirm: %t\n", c.Install.AutoConfirm)
	fmt.Fprintf(&b, "  Build dir: %s\n", c.Install.BuildDir)
	fmt.Fprintf(&b, "  Review PKGBUILD: %t\n", c.Install.ReviewPkgbuild)
	fmt.Fprintf(&b, "[log]\n")
	fmt.Fprintf(&b, "  Path: %s", c.Log.Path)
	return b.String()
}
