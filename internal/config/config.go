package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	DaemonPort    int      `mapstructure:"daemon_port"`
	ExcludeList   []string `mapstructure:"exclude_list"`
	TimeTolerance float64  `mapstructure:"time_tolerance"`
	DBPath        string   `mapstructure:"db_path"`
}

var Default = Config{
	DaemonPort:    9031,
	ExcludeList:   nil,
	TimeTolerance: 2.0,
	DBPath:        "mirro.db",
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home dir: %w", err)
	}

	configDir := filepath.Join(home, ".mirro")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	viper.SetDefault("daemon_port", Default.DaemonPort)
	viper.SetDefault("exclude_list", Default.ExcludeList)
	viper.SetDefault("time_tolerance", Default.TimeTolerance)
	viper.SetDefault("db_path", filepath.Join(configDir, Default.DBPath))

	viper.SetEnvPrefix("MIRRO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := errors.AsType[viper.ConfigFileNotFoundError](err); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
