// Package catalog searches the music catalog for mood-matched track candidates.
package catalog

import (
	"errors"
	"os"
)

// ErrMissingCredentials is returned when SPOTIFY_ID or SPOTIFY_SECRET is not set.
var ErrMissingCredentials = errors.New("missing SPOTIFY_ID or SPOTIFY_SECRET environment variable")

// Config holds catalog API credentials.
type Config struct {
	ClientID     string
	ClientSecret string
}

// LoadConfig reads catalog credentials from environment variables.
// Returns ErrMissingCredentials if either variable is not set; callers treat
// this as fatal before any narrative processing begins.
func LoadConfig() (*Config, error) {
	clientID := os.Getenv("SPOTIFY_ID")
	clientSecret := os.Getenv("SPOTIFY_SECRET")

	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	return &Config{ClientID: clientID, ClientSecret: clientSecret}, nil
}
