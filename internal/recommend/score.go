package recommend

import "github.com/justestif/go-story-soundtracker/internal/catalog"

// Score weights for the four-factor formula. They sum to 1.
const (
	weightValence          = 0.3
	weightEnergy           = 0.3
	weightInstrumentalness = 0.2
	weightAcousticness     = 0.2
)

// ScoreFunc computes a mood-fit score in [0,1] for a candidate track.
// The boolean is false when the track lacks the features the formula needs;
// such tracks are excluded rather than scored with substituted zeros.
type ScoreFunc func(t catalog.Track) (float64, bool)

// FourFactorScore blends valence, energy, instrumentalness, and acousticness.
// Used for scene recommendations, where instrumental texture matters.
func FourFactorScore(t catalog.Track) (float64, bool) {
	if t.Valence == nil || t.Energy == nil || t.Instrumentalness == nil || t.Acousticness == nil {
		return 0, false
	}
	score := weightValence**t.Valence +
		weightEnergy**t.Energy +
		weightInstrumentalness**t.Instrumentalness +
		weightAcousticness**t.Acousticness
	return score, true
}

// ValenceEnergyScore averages valence and energy. Used for story and
// paragraph recommendations.
func ValenceEnergyScore(t catalog.Track) (float64, bool) {
	if t.Valence == nil || t.Energy == nil {
		return 0, false
	}
	return (*t.Valence + *t.Energy) / 2, true
}
