// Package taxonomy defines the mood taxonomy mapping scene elements to descriptor words.
package taxonomy

import (
	"encoding/json"
	"fmt"
	"io"
)

// Scene element categories.
const (
	Location = "location"
	Time     = "time"
	Weather  = "weather"
	Emotion  = "emotion"
	Action   = "action"
	Genre    = "genre"
)

// Taxonomy maps scene-element categories to keys to mood descriptor words.
// A Taxonomy is loaded once at startup and never mutated; it is shared by
// reference between the profiler and the query generator.
type Taxonomy struct {
	categories map[string]map[string][]string
}

// New creates a Taxonomy from a category -> key -> descriptors mapping.
// The mapping is used as-is; callers must not modify it afterwards.
func New(categories map[string]map[string][]string) *Taxonomy {
	if categories == nil {
		categories = make(map[string]map[string][]string)
	}
	return &Taxonomy{categories: categories}
}

// Load parses a JSON taxonomy of the form
// {"location": {"beach": ["peaceful", ...], ...}, ...}.
// New categories and keys require no code changes downstream.
func Load(r io.Reader) (*Taxonomy, error) {
	var categories map[string]map[string][]string
	if err := json.NewDecoder(r).Decode(&categories); err != nil {
		return nil, fmt.Errorf("parsing taxonomy: %w", err)
	}
	return New(categories), nil
}

// Lookup returns the descriptor words for a key within a category.
// Unknown categories or keys return nil.
func (t *Taxonomy) Lookup(category, key string) []string {
	keys, ok := t.categories[category]
	if !ok {
		return nil
	}
	return keys[key]
}

// Categories returns the category names in the taxonomy.
func (t *Taxonomy) Categories() []string {
	names := make([]string, 0, len(t.categories))
	for name := range t.categories {
		names = append(names, name)
	}
	return names
}

// Keys returns the keys defined under a category.
// Unknown categories return nil.
func (t *Taxonomy) Keys(category string) []string {
	mappings, ok := t.categories[category]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(mappings))
	for key := range mappings {
		keys = append(keys, key)
	}
	return keys
}
