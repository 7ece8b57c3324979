// Package config provides configuration loading and validation for chattally.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// ChatFiles lists chat export paths or glob patterns to scan.
	ChatFiles []string `yaml:"chat_files"`

	// SearchTerms are the literal phrases to look for in message bodies.
	// Order is preserved in reports.
	SearchTerms []string `yaml:"search_terms"`

	// MaxLineSize bounds a single line in bytes. Zero uses the scanner default.
	MaxLineSize int `yaml:"max_line_size,omitempty"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnMatches fires only when at least one term was found (default).
	WebhookTriggerOnMatches WebhookTrigger = "on_matches"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint that receives the report.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token. ${VAR} and $VAR are expanded.
	Token string `yaml:"token,omitempty"`

	// Trigger defaults to "on_matches".
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout defaults to 10s.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
