package config

import (
	"github.com/knadh/koanf/providers/confmap"

	"github.com/Leandrogm81/Compromissos/internal/constants"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"store": map[string]interface{}{
			"path": "", // empty means the per-user default data dir
		},
		"notify": map[string]interface{}{
			"backend": "desktop", // desktop | console
			"enabled": true,
		},
		"ai": map[string]interface{}{
			"model":      "deepseek-chat",
			"base_url":   "https://api.deepseek.com",
			"timeout":    120,
			"max_tokens": 1024,
		},
		"backup": map[string]interface{}{
			"max_backups": 5,
		},
		"timezone": constants.DefaultTimezone,
		"debug":    false,
	}
}

// NewDefaultProvider returns a koanf provider backed by the built-in defaults.
func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}
