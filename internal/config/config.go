// Package config loads hustlebust settings from an optional YAML file,
// a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the server settings.
type Config struct {
	StoreURL  string     `yaml:"store_url" env:"MONGO_URL" env-default:"mongodb://mongodb:27017/hustleBust" env-description:"listing store URL (mongodb://, mongodb+srv://, sqlite://)"`
	Addr      string     `yaml:"addr" env:"HB_ADDR" env-default:"0.0.0.0:4000" env-description:"HTTP listen address"`
	PublicDir string     `yaml:"public_dir" env:"HB_PUBLIC_DIR" env-default:"public" env-description:"directory of static files served at /"`
	Dev       bool       `yaml:"dev" env:"HB_DEV" env-default:"false" env-description:"human-readable debug logging"`
	HTTP      HTTPConfig `yaml:"http"`
}

// HTTPConfig holds http.Server timeouts.
type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"HB_READ_HEADER_TIMEOUT" env-default:"5s"`
	ReadTimeout       time.Duration `yaml:"read_timeout" env:"HB_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout      time.Duration `yaml:"write_timeout" env:"HB_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" env:"HB_IDLE_TIMEOUT" env-default:"60s"`
}

// DefaultPath returns the default config file path: ~/.config/hb/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "hb", "config.yaml"), nil
}

// Load reads .env from the working directory (if present), then the YAML
// file at path (if present), then the environment. Environment variables
// override file values; defaults fill whatever is still unset.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if path != "" && fileExists(path) {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading env: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating its directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
