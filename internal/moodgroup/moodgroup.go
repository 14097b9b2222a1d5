// Package moodgroup groups candidate tracks by audio-feature similarity.
package moodgroup

import (
	"log"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/go-story-soundtracker/internal/catalog"
)

// Config holds grouping parameters.
type Config struct {
	NumGroups    int // Number of groups to form (default: 3)
	MinGroupSize int // Groups smaller than this dissolve into outliers
}

// DefaultConfig returns the recommended default configuration.
func DefaultConfig() Config {
	return Config{
		NumGroups:    3,
		MinGroupSize: 2,
	}
}

// Group is a set of tracks sharing a mood, named from its feature centroid.
type Group struct {
	Name     string
	Tracks   []catalog.Track
	Centroid map[string]float64
}

// featureNames defines the audio features used for grouping, in coordinate order.
var featureNames = []string{"energy", "valence", "instrumentalness", "acousticness"}

// trackObservation wraps a Track to implement clusters.Observation.
type trackObservation struct {
	track  *catalog.Track
	coords clusters.Coordinates
}

func (o trackObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o trackObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// ByMood partitions tracks into mood groups using k-means over their audio
// features. Tracks missing any grouping feature are returned as outliers,
// as is everything when there are fewer usable tracks than groups.
func ByMood(tracks []catalog.Track, cfg Config) ([]Group, []catalog.Track) {
	if len(tracks) == 0 {
		return nil, nil
	}

	if cfg.NumGroups <= 0 {
		cfg.NumGroups = DefaultConfig().NumGroups
	}

	var usable []*catalog.Track
	var outliers []catalog.Track
	for i := range tracks {
		t := &tracks[i]
		if hasGroupingFeatures(t) {
			usable = append(usable, t)
		} else {
			outliers = append(outliers, *t)
		}
	}

	if len(usable) < cfg.NumGroups {
		for _, t := range usable {
			outliers = append(outliers, *t)
		}
		return nil, outliers
	}

	var obs clusters.Observations
	for _, t := range usable {
		obs = append(obs, trackObservation{track: t, coords: extractCoords(t)})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, cfg.NumGroups)
	if err != nil {
		log.Printf("moodgroup: k-means partition failed: %v", err)
		for _, t := range usable {
			outliers = append(outliers, *t)
		}
		return nil, outliers
	}

	var groups []Group
	for _, cluster := range result {
		var members []catalog.Track
		for _, o := range cluster.Observations {
			if to, ok := o.(trackObservation); ok {
				members = append(members, *to.track)
			}
		}

		if len(members) < cfg.MinGroupSize {
			outliers = append(outliers, members...)
			continue
		}

		centroid := make(map[string]float64, len(featureNames))
		for i, name := range featureNames {
			centroid[name] = cluster.Center[i]
		}

		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Title < members[j].Title
		})

		groups = append(groups, Group{
			Name:     moodName(centroid),
			Tracks:   members,
			Centroid: centroid,
		})
	}

	// Larger groups first, name as tiebreaker for deterministic output
	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].Tracks) != len(groups[j].Tracks) {
			return len(groups[i].Tracks) > len(groups[j].Tracks)
		}
		return groups[i].Name < groups[j].Name
	})

	return groups, outliers
}

// hasGroupingFeatures checks a track carries every feature used for grouping.
func hasGroupingFeatures(t *catalog.Track) bool {
	return t.Energy != nil &&
		t.Valence != nil &&
		t.Instrumentalness != nil &&
		t.Acousticness != nil
}

// extractCoords builds the coordinate vector for k-means.
func extractCoords(t *catalog.Track) clusters.Coordinates {
	return clusters.Coordinates{
		*t.Energy,
		*t.Valence,
		*t.Instrumentalness,
		*t.Acousticness,
	}
}
