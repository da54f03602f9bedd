package config

import "github.com/spf13/viper"

// Config is the application configuration read from dockhand.yml.
type Config struct {
	Project       string   `mapstructure:"project"`
	Root          string   `mapstructure:"root"`
	MaxDepth      int      `mapstructure:"max_depth"`
	Exclude       []string `mapstructure:"exclude"`
	TopologyFile  string   `mapstructure:"topology_file"`
	Policy        string   `mapstructure:"policy"`
	ComposeBin    string   `mapstructure:"compose_bin"`
	InventoryFile string   `mapstructure:"inventory_file"`
}

// Load fills defaults and overlays whatever viper read from the config
// file and environment.
func Load() (*Config, error) {
	cfg := &Config{
		Root:          ".",
		MaxDepth:      3,
		Policy:        "merge",
		InventoryFile: "dockhand.services.yml",
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
