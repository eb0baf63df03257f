package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config.
func Validate(cfg *Config) error {
	collector := &issueCollector{}

	parsed, err := url.Parse(cfg.ServerURL)
	switch {
	case err != nil:
		collector.add("server_url", fmt.Sprintf("invalid URL: %v", err))
	case parsed.Scheme != "http" && parsed.Scheme != "https":
		collector.add("server_url", "must use http or https")
	case parsed.Host == "":
		collector.add("server_url", "missing host")
	}

	if cfg.HTTPTimeout < 0 {
		collector.add("http_timeout", "must not be negative")
	}

	switch cfg.UI {
	case "auto", "live", "plain":
	default:
		collector.add("ui", fmt.Sprintf("unsupported mode %q (use auto, live, or plain)", cfg.UI))
	}

	return collector.result()
}
