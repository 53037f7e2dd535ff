package config

import "github.com/spf13/viper"

// Config holds runtime configuration for a perigee invocation.
// Values are populated from .perigee.yaml, PERIGEE_* env vars, and CLI flags.
type Config struct {
	NEOPath  string `mapstructure:"neo_path"`
	CADPath  string `mapstructure:"cad_path"`
	DiagPath string `mapstructure:"diag_path"`
	Verbose  bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("neo_path", "data/neos.csv")
	viper.SetDefault("cad_path", "data/cad.json")
	viper.SetDefault("diag_path", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
