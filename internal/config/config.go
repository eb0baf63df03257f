package config

import "time"

// DefaultPath is the config file read when -config is not given.
const DefaultPath = "quiz.yml"

const (
	DefaultServerURL   = "http://127.0.0.1:8080/"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultUIMode      = "auto"
)

// Config holds the quiz client settings.
type Config struct {
	ServerURL   string        `yaml:"server_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	UI          string        `yaml:"ui"`
	NoColor     bool          `yaml:"no_color"`
	LogFile     string        `yaml:"log_file"`
	Student     Student       `yaml:"student"`
}

// Student holds details used to prefill the start form.
type Student struct {
	Name string `yaml:"name"`
	Roll string `yaml:"roll"`
}

// Default returns a config with every default applied.
func Default() Config {
	cfg := Config{}
	Normalize(&cfg)
	return cfg
}
