// Package config loads and persists nameclaim configuration with viper.
//
// The registry selection is rewritten on every Settings toggle; a missing
// config file means "all registries enabled". The GitHub token is read from
// the environment at the moment it is needed (with the config file as a
// relaxed fallback) and is never logged or cached.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/nameclaim/nameclaim/internal/core"
)

const appName = "nameclaim"

// Config is the complete application configuration.
type Config struct {
	Registries  core.Selection `mapstructure:"registries"`
	GitHubToken string         `mapstructure:"github_token"`
	Server      ServerConfig   `mapstructure:"server"`
	HTTPTimeout time.Duration  `mapstructure:"http_timeout"`
	Logging     LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Token returns the bearer credential for registration attempts. The
// environment wins over the config file.
func (c *Config) Token() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	if c != nil {
		return c.GitHubToken
	}
	return ""
}

// Store reads and writes the config file.
type Store struct {
	v   *viper.Viper
	dir string
}

// NewStore creates a store rooted at dir. An empty dir resolves to the
// user config directory (e.g. ~/.config/nameclaim).
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config directory: %w", err)
		}
		dir = filepath.Join(base, appName)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("NAMECLAIM")
	v.AutomaticEnv()
	setDefaults(v)

	return &Store{v: v, dir: dir}, nil
}

func setDefaults(v *viper.Viper) {
	for _, kind := range core.Kinds {
		v.SetDefault("registries."+string(kind), true)
	}

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("http_timeout", "10s")
	v.SetDefault("logging.level", "info")
}

// Load reads the config file if present and unmarshals the result. A missing
// file is not an error: defaults apply.
func (s *Store) Load() (*Config, error) {
	if err := s.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := s.v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// SaveSelection persists the registry selection, rewriting the whole file.
func (s *Store) SaveSelection(sel core.Selection) error {
	for _, kind := range core.Kinds {
		s.v.Set("registries."+string(kind), sel.Enabled(kind))
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := s.v.WriteConfigAs(filepath.Join(s.dir, "config.yaml")); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Path returns the config file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, "config.yaml")
}
