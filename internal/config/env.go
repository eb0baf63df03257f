package config

import "strings"

const (
	EnvServerURL = "QUIZ_SERVER_URL"
	EnvUI        = "QUIZ_UI"
)

// ApplyEnv overrides file values with non-empty environment variables.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if value, ok := lookup(EnvServerURL); ok && strings.TrimSpace(value) != "" {
		cfg.ServerURL = value
	}
	if value, ok := lookup(EnvUI); ok && strings.TrimSpace(value) != "" {
		cfg.UI = value
	}
}
