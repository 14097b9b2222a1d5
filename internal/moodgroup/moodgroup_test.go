package moodgroup

import (
	"testing"

	"github.com/justestif/go-story-soundtracker/internal/catalog"
)

func fptr(v float64) *float64 { return &v }

func fullTrack(id, title string, energy, valence float64) catalog.Track {
	return catalog.Track{
		ID:               id,
		Title:            title,
		Energy:           &energy,
		Valence:          &valence,
		Instrumentalness: fptr(0.5),
		Acousticness:     fptr(0.2),
	}
}

func TestMoodName(t *testing.T) {
	tests := []struct {
		name     string
		centroid map[string]float64
		want     string
	}{
		{
			name:     "high energy high valence",
			centroid: map[string]float64{"energy": 0.8, "valence": 0.7, "acousticness": 0.2},
			want:     "Upbeat & Bright",
		},
		{
			name:     "high energy low valence",
			centroid: map[string]float64{"energy": 0.8, "valence": 0.3, "acousticness": 0.2},
			want:     "Intense & Dark",
		},
		{
			name:     "low energy high valence",
			centroid: map[string]float64{"energy": 0.4, "valence": 0.7, "acousticness": 0.2},
			want:     "Calm & Hopeful",
		},
		{
			name:     "low energy low valence",
			centroid: map[string]float64{"energy": 0.3, "valence": 0.3, "acousticness": 0.2},
			want:     "Reflective & Melancholy",
		},
		{
			name:     "acoustic modifier",
			centroid: map[string]float64{"energy": 0.3, "valence": 0.7, "acousticness": 0.8},
			want:     "Calm & Hopeful (Acoustic)",
		},
		{
			name:     "boundary energy exactly 0.6 is low",
			centroid: map[string]float64{"energy": 0.6, "valence": 0.7, "acousticness": 0.2},
			want:     "Calm & Hopeful",
		},
		{
			name:     "boundary valence exactly 0.5 is low",
			centroid: map[string]float64{"energy": 0.8, "valence": 0.5, "acousticness": 0.2},
			want:     "Intense & Dark",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := moodName(tt.centroid); got != tt.want {
				t.Errorf("moodName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestByMoodEmptyInput(t *testing.T) {
	groups, outliers := ByMood(nil, DefaultConfig())
	if groups != nil || outliers != nil {
		t.Errorf("ByMood(nil) = %v, %v, want nil, nil", groups, outliers)
	}
}

func TestByMoodFewerTracksThanGroups(t *testing.T) {
	tracks := []catalog.Track{
		fullTrack("1", "One", 0.8, 0.8),
		fullTrack("2", "Two", 0.2, 0.2),
	}

	groups, outliers := ByMood(tracks, Config{NumGroups: 3, MinGroupSize: 1})
	if groups != nil {
		t.Errorf("groups = %v, want nil", groups)
	}
	if len(outliers) != 2 {
		t.Errorf("got %d outliers, want 2", len(outliers))
	}
}

func TestByMoodMissingFeaturesAreOutliers(t *testing.T) {
	featureless := catalog.Track{ID: "x", Title: "No Features"}
	tracks := []catalog.Track{featureless, fullTrack("1", "One", 0.8, 0.8)}

	_, outliers := ByMood(tracks, DefaultConfig())

	found := false
	for _, t2 := range outliers {
		if t2.ID == "x" {
			found = true
		}
	}
	if !found {
		t.Error("featureless track should be an outlier")
	}
}

func TestByMoodSeparatesDistinctMoods(t *testing.T) {
	var tracks []catalog.Track
	// Two well-separated mood pockets
	for i := 0; i < 4; i++ {
		tracks = append(tracks, fullTrack("up"+string(rune('a'+i)), "Up", 0.85+float64(i)*0.01, 0.85))
		tracks = append(tracks, fullTrack("down"+string(rune('a'+i)), "Down", 0.1+float64(i)*0.01, 0.1))
	}

	groups, _ := ByMood(tracks, Config{NumGroups: 2, MinGroupSize: 2})
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	names := map[string]bool{}
	for _, g := range groups {
		names[g.Name] = true
	}
	if !names["Upbeat & Bright"] || !names["Reflective & Melancholy"] {
		t.Errorf("group names = %v, want both quadrants represented", names)
	}
}
