package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"uno-server/internal/util"
)

// Config provides configuration for the Uno server
type Config struct {
	loaded bool
	Log    struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Game struct {
		Players          int   `yaml:"players" envconfig:"players"`
		StartingHandSize int   `yaml:"startingHandSize" envconfig:"starting_hand_size"`
		Seed             int64 `yaml:"seed" envconfig:"seed"`
	} `yaml:"game"`
	Server struct {
		Addr           string   `yaml:"addr" envconfig:"addr"`
		AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	} `yaml:"server"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	c := Config{}
	c.Log.Level = "info"
	c.Game.Players = 2
	c.Game.StartingHandSize = 7
	c.Server.Addr = ":5000"
	c.Server.AllowedOrigins = []string{"*"}

	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The YAML file is optional; environment variables prefixed with UNO_ override it
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("UNO_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("uno", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
