package config

import "strings"

func Normalize(cfg *Config) {
	cfg.ServerURL = strings.TrimSpace(cfg.ServerURL)
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	cfg.UI = strings.ToLower(strings.TrimSpace(cfg.UI))
	if cfg.UI == "" {
		cfg.UI = DefaultUIMode
	}
	cfg.LogFile = strings.TrimSpace(cfg.LogFile)
	cfg.Student.Name = strings.TrimSpace(cfg.Student.Name)
	cfg.Student.Roll = strings.TrimSpace(cfg.Student.Roll)
}
