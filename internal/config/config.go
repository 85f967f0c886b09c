// Package config loads the server configuration from a YAML file and the environment
package config

import (
	"fmt"
	"os"
	"time"

	"liarsbar-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix for every environment variable
const EnvPrefix = "liarsbar"

// ConfigFileEnv names the environment variable that points at the config file
const ConfigFileEnv = "LIARSBAR_CONFIG_FILE"

// Config provides configuration for the Liar's Bar server
type Config struct {
	loaded bool

	Addr string `yaml:"addr" envconfig:"addr"`
	Log  struct {
		Level             string `yaml:"level" envconfig:"level"`
		Format            string `yaml:"format" envconfig:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Table struct {
		// IdleTimeout is in seconds. Zero keeps idle tables open forever.
		IdleTimeout int `yaml:"idleTimeout" envconfig:"idle_timeout"`
	} `yaml:"table"`
	Bot struct {
		DelayMillis int    `yaml:"delayMillis" envconfig:"delay_millis"`
		Difficulty  string `yaml:"difficulty" envconfig:"difficulty"`
	} `yaml:"bot"`
	TokenLength int `yaml:"tokenLength" envconfig:"token_length"`
	CORS        struct {
		AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	} `yaml:"cors"`
}

// IdleTimeout returns the table idle timeout as a duration
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.Table.IdleTimeout) * time.Second
}

// BotDelay returns the bot delay as a duration
func (c Config) BotDelay() time.Duration {
	return time.Duration(c.Bot.DelayMillis) * time.Millisecond
}

// DefaultConfig returns the configuration used when nothing else is set
func DefaultConfig() Config {
	cfg := Config{
		Addr:        ":5000",
		TokenLength: 24,
	}

	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Table.IdleTimeout = 600
	cfg.Bot.DelayMillis = 800
	cfg.Bot.Difficulty = "easy"
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	return cfg
}

var config Config

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
// The defaults are overlaid with the config file, if there is one, and then the environment.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv(ConfigFileEnv, "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not open config file: %w", err)
	}

	if file != nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return fmt.Errorf("could not decode %s: %w", configFile, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return fmt.Errorf("could not process environment: %w", err)
	}

	cfg.loaded = true
	config = cfg

	return nil
}
