// Package profile turns raw narrative text into a structured mood profile.
package profile

import (
	"github.com/justestif/go-story-soundtracker/internal/nlu"
)

// Mode selects the granularity of narrative input being profiled.
type Mode int

const (
	// Story profiles a whole story at once.
	Story Mode = iota
	// Paragraph profiles a single paragraph of a longer document.
	Paragraph
	// Scene profiles a single scene description.
	Scene
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Story:
		return "story"
	case Paragraph:
		return "paragraph"
	case Scene:
		return "scene"
	default:
		return "unknown"
	}
}

// Entity is a named entity extracted from the text.
type Entity struct {
	Text  string
	Label string
}

// Profile is the normalized narrative profile a text reduces to.
//
// Topics, Entities, and TagHits values contain no duplicates. MoodWords keeps
// source order and may repeat; downstream consumers must not depend on that
// order for anything beyond diagnostics.
type Profile struct {
	Topics    []string
	MoodWords []string
	Entities  []Entity
	Sentiment float64

	// TagHits maps taxonomy categories to the keys matched in the text.
	// Only populated in Scene mode.
	TagHits map[string][]string
}

// Empty reports whether the profile carries no usable signal at all.
func (p *Profile) Empty() bool {
	return len(p.Topics) == 0 &&
		len(p.MoodWords) == 0 &&
		len(p.Entities) == 0 &&
		p.Sentiment == 0 &&
		len(p.TagHits) == 0
}

// moodPos returns the part-of-speech tags counted as mood words for a mode.
// Whole stories lean on adjectives and nouns; shorter units also pick up
// verbs and adverbs.
func moodPos(mode Mode) map[string]bool {
	if mode == Story {
		return map[string]bool{nlu.PosAdjective: true, nlu.PosNoun: true}
	}
	return map[string]bool{nlu.PosAdjective: true, nlu.PosVerb: true, nlu.PosAdverb: true}
}
