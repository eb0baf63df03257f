package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LoadOptions controls how Load treats a missing file and where it reads
// environment overrides from.
type LoadOptions struct {
	// Optional makes a missing file yield the defaults instead of an error.
	Optional  bool
	LookupEnv func(string) (string, bool)
}

// Load reads, parses, applies environment overrides, normalizes, and
// validates a config file.
func Load(path string, opts LoadOptions) (Config, error) {
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = Parse(data)
		if err != nil {
			return Config{}, err
		}
	case opts.Optional && errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	ApplyEnv(&cfg, opts.LookupEnv)
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
