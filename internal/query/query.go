// Package query expands a narrative profile into ranked music search queries.
package query

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/justestif/go-story-soundtracker/internal/nlu"
	"github.com/justestif/go-story-soundtracker/internal/profile"
	"github.com/justestif/go-story-soundtracker/internal/taxonomy"
)

// Item is a single search query, optionally paired with a human-readable
// reason explaining why it matches the narrative.
type Item struct {
	Query  string
	Reason string
}

// Sentiment triads appended when the aggregate sentiment leans one way.
var (
	upliftingTriad = []string{"uplifting", "joyful", "bright"}
	somberTriad    = []string{"melancholic", "sad", "dark"}
)

// fallbackQuery is emitted in Story mode when no other stage produced anything.
const fallbackQuery = "soundtrack"

// entityLabels are the entity types worth searching for directly.
var entityLabels = map[string]bool{
	nlu.LabelPerson:       true,
	nlu.LabelEvent:        true,
	nlu.LabelOrganization: true,
}

// SynonymSource abstracts the synonym-lookup collaborator.
type SynonymSource interface {
	Synonyms(ctx context.Context, word string) ([]string, error)
}

// Generator expands profiles into search queries.
type Generator struct {
	synonyms SynonymSource
	taxonomy *taxonomy.Taxonomy
}

// New creates a Generator sharing the process-wide taxonomy.
func New(synonyms SynonymSource, tax *taxonomy.Taxonomy) *Generator {
	return &Generator{synonyms: synonyms, taxonomy: tax}
}

// Generate expands a profile into an ordered, deduplicated query list.
//
// Stages run in fixed priority order (topics, taxonomy hits, mood words,
// entities, sentiment, fallback) and the resulting order is the retrieval
// order, which matters because retrieval may stop early. Duplicates are
// removed by exact query string; the first reason recorded wins.
func (g *Generator) Generate(ctx context.Context, prof *profile.Profile, mode profile.Mode) []Item {
	b := &builder{seen: make(map[string]bool)}

	// Stage 1: topics, plus their synonyms (Story and Paragraph modes).
	if mode == profile.Story || mode == profile.Paragraph {
		for _, topic := range prof.Topics {
			b.add(topicQuery(topic, mode), "")
			for _, syn := range g.lookupSynonyms(ctx, topic) {
				b.add(topicQuery(syn, mode), "")
			}
		}
	}

	// Stage 2: taxonomy descriptor words (Scene mode).
	if mode == profile.Scene {
		g.addTaxonomyQueries(b, prof)
	}

	// Stage 3: mood words.
	for _, word := range prof.MoodWords {
		b.add(word, fmt.Sprintf("Matches mood: %s", word))
	}

	// Stage 4: entities (Paragraph mode).
	if mode == profile.Paragraph {
		for _, ent := range prof.Entities {
			if entityLabels[ent.Label] {
				b.add(ent.Text, "")
			}
		}
	}

	// Stage 5: sentiment triads.
	switch {
	case prof.Sentiment > 0:
		for _, q := range upliftingTriad {
			b.add(q, "Matches positive sentiment")
		}
	case prof.Sentiment < 0:
		for _, q := range somberTriad {
			b.add(q, "Matches negative sentiment")
		}
	}

	// Stage 6: generic fallback (Story mode).
	if mode == profile.Story && len(b.items) == 0 {
		b.add(fallbackQuery, "")
	}

	return b.items
}

// addTaxonomyQueries emits every descriptor word for every taxonomy hit.
func (g *Generator) addTaxonomyQueries(b *builder, prof *profile.Profile) {
	categories := make([]string, 0, len(prof.TagHits))
	for category := range prof.TagHits {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		for _, key := range prof.TagHits[category] {
			reason := fmt.Sprintf("Matches %s: %s", category, key)
			for _, descriptor := range g.taxonomy.Lookup(category, key) {
				b.add(descriptor, reason)
			}
		}
	}
}

// lookupSynonyms fetches synonyms, degrading to none on collaborator failure.
func (g *Generator) lookupSynonyms(ctx context.Context, word string) []string {
	synonyms, err := g.synonyms.Synonyms(ctx, word)
	if err != nil {
		log.Printf("query: synonym lookup for %q failed: %v", word, err)
		return nil
	}
	return synonyms
}

// topicQuery formats a topic for the mode: whole stories search for
// soundtracks, paragraphs search for the topic itself.
func topicQuery(topic string, mode profile.Mode) string {
	if mode == profile.Story {
		return topic + " soundtrack"
	}
	return topic
}

// builder accumulates queries with string-level deduplication.
type builder struct {
	items []Item
	seen  map[string]bool
}

func (b *builder) add(query, reason string) {
	if query == "" || b.seen[query] {
		return
	}
	b.seen[query] = true
	b.items = append(b.items, Item{Query: query, Reason: reason})
}
