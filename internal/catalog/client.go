package catalog

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

const trackURLPrefix = "https://open.spotify.com/track/"

// Client wraps the Spotify Web API for catalog search and audio features.
type Client struct {
	api *spotify.Client
}

// NewClient authenticates with the client-credentials flow and returns a
// catalog client. No user login is involved; the engine only reads the
// public catalog.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	token, err := creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticating with catalog: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	return &Client{api: spotify.New(httpClient, spotify.WithRetry(true))}, nil
}

// Search runs a track search and maps the results.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Track, error) {
	results, err := c.api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("searching tracks for %q: %w", query, err)
	}

	if results.Tracks == nil {
		return nil, nil
	}

	tracks := make([]Track, 0, len(results.Tracks.Tracks))
	for _, ft := range results.Tracks.Tracks {
		tracks = append(tracks, toTrack(ft))
	}
	return tracks, nil
}

// AudioFeatures fetches audio features for the given track IDs.
// Tracks the catalog has no features for are absent from the result.
func (c *Client) AudioFeatures(ctx context.Context, ids []string) (map[string]Features, error) {
	if len(ids) == 0 {
		return map[string]Features{}, nil
	}

	spotifyIDs := make([]spotify.ID, len(ids))
	for i, id := range ids {
		spotifyIDs[i] = spotify.ID(id)
	}

	features, err := c.api.GetAudioFeatures(ctx, spotifyIDs...)
	if err != nil {
		return nil, fmt.Errorf("fetching audio features: %w", err)
	}

	result := make(map[string]Features, len(features))
	for _, f := range features {
		if f == nil {
			continue // Track has no audio features
		}
		result[f.ID.String()] = Features{
			Valence:          f64(f.Valence),
			Energy:           f64(f.Energy),
			Instrumentalness: f64(f.Instrumentalness),
			Acousticness:     f64(f.Acousticness),
		}
	}
	return result, nil
}

// toTrack maps a catalog API track to the engine's candidate type.
func toTrack(ft spotify.FullTrack) Track {
	artists := make([]string, len(ft.Artists))
	for i, a := range ft.Artists {
		artists[i] = a.Name
	}

	url := ft.ExternalURLs["spotify"]
	if url == "" {
		url = trackURLPrefix + ft.ID.String()
	}

	return Track{
		ID:         ft.ID.String(),
		Title:      ft.Name,
		Artists:    artists,
		PreviewURL: ft.PreviewURL,
		URL:        url,
	}
}

func f64(v float32) *float64 {
	f := float64(v)
	return &f
}
