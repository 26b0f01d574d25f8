package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Leandrogm81/Compromissos/internal/constants"
)

type Config struct {
	Store    StoreConfig  `koanf:"store"`
	Notify   NotifyConfig `koanf:"notify"`
	AI       AIConfig     `koanf:"ai"`
	Backup   BackupConfig `koanf:"backup"`
	Timezone string       `koanf:"timezone"`
	Debug    bool         `koanf:"debug"`
}

type StoreConfig struct {
	// Path to the store file. A ".json" extension selects the JSON backend;
	// anything else is sqlite. Empty means the per-user default location.
	Path string `koanf:"path"`
}

type NotifyConfig struct {
	Backend string `koanf:"backend"` // desktop | console
	Enabled bool   `koanf:"enabled"`
}

type AIConfig struct {
	// APIKey is normally left empty here and resolved from the system keyring;
	// config and env act as overrides.
	APIKey    string `koanf:"api_key"`
	Model     string `koanf:"model"`
	BaseURL   string `koanf:"base_url"`
	Timeout   int    `koanf:"timeout"` // seconds
	MaxTokens int    `koanf:"max_tokens"`
}

type BackupConfig struct {
	MaxBackups int `koanf:"max_backups"`
}

// Load layers configuration: built-in defaults, then the YAML file at
// configPath if present, then COMPROMISSOS_* environment variables.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("COMPROMISSOS_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "COMPROMISSOS_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if apiKey := os.Getenv("DEEPSEEK_API_KEY"); apiKey != "" {
		k.Set("ai.api_key", apiKey)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Store.Path = expandPath(cfg.Store.Path)
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Notify.Backend {
	case "desktop", "console":
	default:
		return fmt.Errorf("unknown notify backend: %s (supported: desktop, console)", c.Notify.Backend)
	}

	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai timeout must be positive")
	}

	if c.Backup.MaxBackups <= 0 {
		return fmt.Errorf("max_backups must be positive")
	}

	return nil
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "."+constants.AppName, "config.yaml")
}

// DefaultStorePath returns the per-user store location used when no path is
// configured.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return constants.AppName + ".db"
	}
	return filepath.Join(home, "."+constants.AppName, constants.AppName+".db")
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
