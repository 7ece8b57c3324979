package config

import (
	"os"
	"strings"
	"time"
)

// Default values for configuration.
const (
	DefaultChatFile       = "Conversa do WhatsApp com Benzinho ❤️.txt"
	DefaultWebhookTimeout = 10 * time.Second
)

// DefaultSearchTerms are the phrases used when none are configured.
var DefaultSearchTerms = []string{"Te amo", "Meu bem", "Amor"}

// Environment variable names. Both take comma separated lists.
const (
	EnvChatFiles   = "CHATTALLY_CHAT_FILES"
	EnvSearchTerms = "CHATTALLY_SEARCH_TERMS"
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		ChatFiles:   []string{DefaultChatFile},
		SearchTerms: append([]string(nil), DefaultSearchTerms...),
	}
}

// applyEnvironmentOverrides replaces list settings with their environment
// variable values when set.
func (c *Config) applyEnvironmentOverrides() {
	if files := splitList(os.Getenv(EnvChatFiles)); len(files) > 0 {
		c.ChatFiles = files
	}
	if terms := splitList(os.Getenv(EnvSearchTerms)); len(terms) > 0 {
		c.SearchTerms = terms
	}
}

// splitList splits a comma separated value, dropping empty items. Items are
// not trimmed beyond that since search terms may carry meaningful spaces.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
