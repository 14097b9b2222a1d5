package profile

import (
	"context"
	"log"
	"slices"
	"sort"
	"strings"

	"github.com/justestif/go-story-soundtracker/internal/nlu"
	"github.com/justestif/go-story-soundtracker/internal/taxonomy"
)

// Analyzer abstracts the language service for testing.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*nlu.Analysis, error)
}

// SynonymSource abstracts the synonym-lookup collaborator.
type SynonymSource interface {
	Synonyms(ctx context.Context, word string) ([]string, error)
}

// Profiler builds narrative profiles from raw text.
type Profiler struct {
	analyzer  Analyzer
	synonyms  SynonymSource
	taxonomy  *taxonomy.Taxonomy
	aggregate Aggregator
}

// Option configures a Profiler.
type Option func(*Profiler)

// WithAggregator swaps the sentiment aggregation strategy.
func WithAggregator(agg Aggregator) Option {
	return func(p *Profiler) {
		if agg != nil {
			p.aggregate = agg
		}
	}
}

// New creates a Profiler. The taxonomy is only consulted in Scene mode.
func New(analyzer Analyzer, synonyms SynonymSource, tax *taxonomy.Taxonomy, opts ...Option) *Profiler {
	p := &Profiler{
		analyzer:  analyzer,
		synonyms:  synonyms,
		taxonomy:  tax,
		aggregate: SumNonZero,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build profiles one unit of narrative text.
//
// Empty input, input with no sentences, and language service failures all
// degrade to an empty profile with sentiment 0; service failures are logged.
// Build never fails the surrounding pipeline.
func (p *Profiler) Build(ctx context.Context, text string, mode Mode) *Profile {
	prof := &Profile{}

	text = strings.TrimSpace(text)
	if text == "" {
		return prof
	}

	// Scene descriptions are matched against taxonomy keys case-insensitively.
	if mode == Scene {
		text = strings.ToLower(text)
	}

	analysis, err := p.analyzer.Analyze(ctx, text)
	if err != nil {
		log.Printf("profile: language analysis failed, continuing with empty profile: %v", err)
		return prof
	}
	if len(analysis.Sentences) == 0 {
		return prof
	}

	prof.Topics = dedupe(analysis.NounChunks)
	prof.MoodWords = extractMoodWords(analysis.Tokens, mode)
	prof.Entities = dedupeEntities(analysis.Entities)
	prof.Sentiment = p.aggregate(sentimentSignals(analysis.Tokens))

	if mode == Scene {
		prof.TagHits = p.scanTaxonomy(ctx, analysis.Tokens)
	}

	return prof
}

// extractMoodWords keeps token surface forms whose part of speech counts as a
// mood word for the mode, preserving source order.
func extractMoodWords(tokens []nlu.Token, mode Mode) []string {
	pos := moodPos(mode)
	var words []string
	for _, t := range tokens {
		if pos[t.Pos] {
			words = append(words, t.Text)
		}
	}
	return words
}

// sentimentSignals collects the usable per-token sentiment values.
// Tokens without a signal are skipped entirely, not treated as zero.
func sentimentSignals(tokens []nlu.Token) []float64 {
	var signals []float64
	for _, t := range tokens {
		if t.Sentiment != nil {
			signals = append(signals, *t.Sentiment)
		}
	}
	return signals
}

// scanTaxonomy matches every token against every taxonomy key. A token hits a
// key when the key is a substring of the token or the token is one of the
// key's synonyms. Categories in the result are free of duplicate keys.
func (p *Profiler) scanTaxonomy(ctx context.Context, tokens []nlu.Token) map[string][]string {
	hits := make(map[string][]string)

	categories := p.taxonomy.Categories()
	sort.Strings(categories)

	for _, category := range categories {
		keys := p.taxonomy.Keys(category)
		sort.Strings(keys)

		for _, key := range keys {
			if p.keyMatches(ctx, key, tokens) && !slices.Contains(hits[category], key) {
				hits[category] = append(hits[category], key)
			}
		}
	}

	if len(hits) == 0 {
		return nil
	}
	return hits
}

// keyMatches reports whether any token hits the taxonomy key.
func (p *Profiler) keyMatches(ctx context.Context, key string, tokens []nlu.Token) bool {
	var synonyms []string
	synonymsLoaded := false

	for _, t := range tokens {
		if strings.Contains(t.Text, key) {
			return true
		}

		if !synonymsLoaded {
			var err error
			synonyms, err = p.synonyms.Synonyms(ctx, key)
			if err != nil {
				// Missing synonyms only narrow the match; substring
				// containment above still applies.
				log.Printf("profile: synonym lookup for %q failed: %v", key, err)
				synonyms = nil
			}
			synonymsLoaded = true
		}

		if slices.Contains(synonyms, t.Text) {
			return true
		}
	}
	return false
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// dedupeEntities removes duplicate (text, label) pairs preserving order.
func dedupeEntities(entities []nlu.Entity) []Entity {
	type pair struct{ text, label string }
	seen := make(map[pair]bool, len(entities))
	var out []Entity
	for _, e := range entities {
		k := pair{e.Text, e.Label}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, Entity{Text: e.Text, Label: e.Label})
	}
	return out
}
