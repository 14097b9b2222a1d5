package recommend

import (
	"sort"

	"github.com/justestif/go-story-soundtracker/internal/catalog"
)

// Recommendation is a scored track ready to present to the caller.
// Immutable once created; discarded after the caller consumes it.
type Recommendation struct {
	Title       string
	Artist      string
	URL         string
	MoodScore   float64
	MatchReason string
}

// seenSet tracks which candidates have already been recommended within one
// invocation, guaranteeing the final list never repeats a track.
type seenSet map[string]bool

// identity is the dedup key: the track ID, or the title as a weaker fallback
// when the catalog returned no ID.
func identity(t catalog.Track) string {
	if t.ID != "" {
		return t.ID
	}
	return t.Title
}

// scoreCandidates converts candidates to recommendations in retrieval order,
// skipping tracks already seen and tracks the score function rejects.
// The seen set is updated in place. The accepted tracks come back alongside
// the recommendations for callers that need the underlying features.
func scoreCandidates(tracks []catalog.Track, reason string, score ScoreFunc, seen seenSet) ([]Recommendation, []catalog.Track) {
	var recs []Recommendation
	var accepted []catalog.Track
	for _, t := range tracks {
		key := identity(t)
		if key == "" || seen[key] {
			continue
		}
		moodScore, ok := score(t)
		if !ok {
			continue
		}
		seen[key] = true
		accepted = append(accepted, t)
		recs = append(recs, Recommendation{
			Title:       t.Title,
			Artist:      t.PrimaryArtist(),
			URL:         t.URL,
			MoodScore:   moodScore,
			MatchReason: reason,
		})
	}
	return recs, accepted
}

// sortByScore orders recommendations by descending mood score. The sort is
// stable, so equal scores keep retrieval order.
func sortByScore(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].MoodScore > recs[j].MoodScore
	})
}

// capResults truncates to at most n results; n <= 0 means no cap.
func capResults(recs []Recommendation, n int) []Recommendation {
	if n > 0 && len(recs) > n {
		return recs[:n]
	}
	return recs
}
