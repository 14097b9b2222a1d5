package catalog

// Track is a candidate music track returned by the catalog search.
// Audio feature fields are nil until fetched and stay nil when the catalog
// has no data for them.
type Track struct {
	ID         string
	Title      string
	Artists    []string
	PreviewURL string
	URL        string

	Valence          *float64
	Energy           *float64
	Instrumentalness *float64
	Acousticness     *float64
}

// PrimaryArtist returns the first listed artist, or an empty string.
func (t *Track) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0]
}

// Features holds the audio features for one track as fetched from the
// catalog or a cache. Nil fields were unavailable.
type Features struct {
	Valence          *float64
	Energy           *float64
	Instrumentalness *float64
	Acousticness     *float64
}

// applyFeatures copies feature values onto a track.
func applyFeatures(t *Track, f Features) {
	t.Valence = f.Valence
	t.Energy = f.Energy
	t.Instrumentalness = f.Instrumentalness
	t.Acousticness = f.Acousticness
}
