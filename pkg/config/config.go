package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for whirlwind
type Config struct {
	Scan  ScanConfig  `mapstructure:"scan"`
	Stage StageConfig `mapstructure:"stage"`
}

// ScanConfig holds directory scan options
type ScanConfig struct {
	TopN     int  `mapstructure:"top_n"`
	NoIgnore bool `mapstructure:"no_ignore"`
}

// StageConfig holds metadata staging options
type StageConfig struct {
	Columns    []string `mapstructure:"columns"`
	Extensions []string `mapstructure:"extensions"`
	TargetSRID int      `mapstructure:"target_srid"`
	Jobs       int      `mapstructure:"jobs"`
}

var defaultConfig = Config{
	Scan: ScanConfig{
		TopN: 100,
	},
	Stage: StageConfig{
		Columns: []string{
			"mosaic_id", "uri", "uri_etag", "byte_size", "crs", "srid",
			"pixel_width", "pixel_height", "band_count", "dtype", "nodata",
			"footprint", "acquired_at", "created_at",
		},
		Extensions: []string{".tif", ".tiff"},
		TargetSRID: 4326,
		Jobs:       1,
	},
}

// LoadConfig loads configuration from defaults, config files, and environment
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("scan.top_n", defaultConfig.Scan.TopN)
	v.SetDefault("scan.no_ignore", defaultConfig.Scan.NoIgnore)
	v.SetDefault("stage.columns", defaultConfig.Stage.Columns)
	v.SetDefault("stage.extensions", defaultConfig.Stage.Extensions)
	v.SetDefault("stage.target_srid", defaultConfig.Stage.TargetSRID)
	v.SetDefault("stage.jobs", defaultConfig.Stage.Jobs)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".whirlwind"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("WHIRLWIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Missing config files are fine; anything else is a real problem
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Default returns a copy of the built-in defaults.
func Default() Config {
	return defaultConfig
}
