package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file. Settings missing from the
// file keep their DefaultConfig values.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.resolveWebhooks()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadDefault returns DefaultConfig with environment overrides applied.
func LoadDefault(_ context.Context) (*Config, error) {
	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	cfg.resolveWebhooks()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors. It does not modify cfg, so it
// is safe to call again after command-line overrides.
func Validate(cfg *Config) error {
	if len(cfg.ChatFiles) == 0 {
		return errors.New("chat_files: at least one chat file is required")
	}
	for i, f := range cfg.ChatFiles {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("chat_files[%d]: path is empty", i)
		}
	}

	// An empty term list is allowed and simply produces empty tables.
	for i, term := range cfg.SearchTerms {
		if term == "" {
			return fmt.Errorf("search_terms[%d]: term is empty", i)
		}
	}

	if cfg.MaxLineSize < 0 {
		return fmt.Errorf("max_line_size: must be >= 0, got %d", cfg.MaxLineSize)
	}

	for i := range cfg.Webhooks {
		if err := validateWebhook(cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

// DuplicateTerms returns terms that appear more than once, in order of their
// second appearance. Duplicates are legal but each copy is tallied on its own.
func DuplicateTerms(terms []string) []string {
	seen := make(map[string]int, len(terms))
	var dups []string
	for _, term := range terms {
		seen[term]++
		if seen[term] == 2 {
			dups = append(dups, term)
		}
	}
	return dups
}

// resolveWebhooks expands webhook tokens and fills in trigger and timeout
// defaults. Load and LoadDefault call it exactly once per config.
func (c *Config) resolveWebhooks() {
	for i := range c.Webhooks {
		wh := &c.Webhooks[i]
		wh.Token = expandEnvVar(wh.Token)
		if wh.Trigger == "" {
			wh.Trigger = WebhookTriggerOnMatches
		}
		if wh.Timeout <= 0 {
			wh.Timeout = DefaultWebhookTimeout
		}
	}
}

func validateWebhook(wh WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	switch wh.Trigger {
	// Empty means on_matches for hand-built configs that skipped Load.
	case "", WebhookTriggerOnMatches, WebhookTriggerAlways, WebhookTriggerNever:
	default:
		return fmt.Errorf("invalid trigger %q (must be on_matches, always, or never)", wh.Trigger)
	}

	if wh.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", wh.Timeout)
	}

	return nil
}

// expandEnvVar expands a value written entirely as ${VAR} or $VAR.
func expandEnvVar(s string) string {
	switch {
	case strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}"):
		return os.Getenv(s[2 : len(s)-1])
	case strings.HasPrefix(s, "$"):
		return os.Getenv(s[1:])
	default:
		return s
	}
}
