package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Development DevelopmentConfig `mapstructure:"development"`
	Rules       RulesConfig       `mapstructure:"rules"`
	Store       StoreConfig       `mapstructure:"store"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DevelopmentConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

type RulesConfig struct {
	// Prevalidate runs local legality checks before a tap is submitted. With
	// it off the referee is the only judge of a move.
	Prevalidate bool `mapstructure:"prevalidate"`
	LocalGames  bool `mapstructure:"local_games"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "memory" or "badger"
	Path   string `mapstructure:"path"`
}

func Load() (*Config, error) {
	return load(viper.New(), "")
}

// LoadFile reads the config at path instead of searching for config.yaml.
func LoadFile(path string) (*Config, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Enable environment variables
	v.SetEnvPrefix("CHESSRULES")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and environment
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("development.debug", false)
	v.SetDefault("development.log_level", "info")
	v.SetDefault("rules.prevalidate", true)
	v.SetDefault("rules.local_games", false)
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.path", "")
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Development: DevelopmentConfig{
			LogLevel: "info",
		},
		Rules: RulesConfig{
			Prevalidate: true,
		},
		Store: StoreConfig{
			Driver: "memory",
		},
	}
}
