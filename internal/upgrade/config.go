package upgrade

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// IgnoreConfig is the upgrade.toml file next to the main configuration:
// packages listed under ignore are left alone by upgrade-all.
type IgnoreConfig struct {
	Ignore []string `toml:"ignore"`
}

// LoadIgnoreConfig reads the ignore file at path. A missing file is an
// empty configuration, not an error.
func LoadIgnoreConfig(path string) (*IgnoreConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &IgnoreConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read upgrade config: %w", err)
	}

	var cfg IgnoreConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse upgrade config: %w", err)
	}

	return &cfg, nil
}
