// Package nlu provides a client for the external natural-language analysis service.
package nlu

import (
	"errors"
	"os"
)

// ErrMissingServiceURL is returned when NLU_URL is not set.
var ErrMissingServiceURL = errors.New("missing NLU_URL environment variable")

// Config holds language service configuration.
type Config struct {
	BaseURL string
}

// LoadConfig reads language service configuration from environment variables.
// Returns ErrMissingServiceURL if NLU_URL is not set.
func LoadConfig() (*Config, error) {
	baseURL := os.Getenv("NLU_URL")
	if baseURL == "" {
		return nil, ErrMissingServiceURL
	}
	return &Config{BaseURL: baseURL}, nil
}
