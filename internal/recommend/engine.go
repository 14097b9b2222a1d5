// Package recommend drives the narrative-to-music matching pipeline:
// profile the text, expand queries, retrieve candidates, score, and rank.
package recommend

import (
	"context"

	"github.com/justestif/go-story-soundtracker/internal/catalog"
	"github.com/justestif/go-story-soundtracker/internal/profile"
	"github.com/justestif/go-story-soundtracker/internal/query"
)

// Defaults for the engine's tunables.
const (
	// DefaultResultCap bounds paragraph and scene recommendation lists.
	DefaultResultCap = 3

	// DefaultSadnessThreshold is the valence below which a story match is
	// considered suitably somber.
	DefaultSadnessThreshold = 0.5
)

// StopReason records why an invocation stopped iterating queries.
type StopReason string

const (
	// StopMatched means a satisfying candidate ended the run early.
	StopMatched StopReason = "matched"
	// StopExhausted means every query was tried.
	StopExhausted StopReason = "exhausted"
	// StopCapReached means the result cap filled before query exhaustion.
	StopCapReached StopReason = "cap reached"
)

// Profiler abstracts the text profiler.
type Profiler interface {
	Build(ctx context.Context, text string, mode profile.Mode) *profile.Profile
}

// QueryGenerator abstracts query expansion.
type QueryGenerator interface {
	Generate(ctx context.Context, prof *profile.Profile, mode profile.Mode) []query.Item
}

// Retriever abstracts candidate retrieval for one query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, requirePreview bool) []catalog.Track
}

// Engine orchestrates the pipeline for one narrative unit at a time.
// It holds no cross-call state; every invocation owns its own dedup set.
type Engine struct {
	profiler  Profiler
	generator QueryGenerator
	retriever Retriever

	resultCap         int
	sadnessThreshold  float64
	minParagraphWords int
	bookWorkers       int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithResultCap sets the maximum recommendations returned for paragraph and
// scene modes. Zero or negative means uncapped.
func WithResultCap(n int) EngineOption {
	return func(e *Engine) {
		e.resultCap = n
	}
}

// WithSadnessThreshold sets the story-mode valence cutoff.
func WithSadnessThreshold(v float64) EngineOption {
	return func(e *Engine) {
		e.sadnessThreshold = v
	}
}

// WithMinParagraphWords sets the word count below which book paragraphs are skipped.
func WithMinParagraphWords(n int) EngineOption {
	return func(e *Engine) {
		if n >= 0 {
			e.minParagraphWords = n
		}
	}
}

// WithBookWorkers sets how many paragraphs are processed concurrently.
func WithBookWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.bookWorkers = n
		}
	}
}

// NewEngine creates an Engine.
func NewEngine(profiler Profiler, generator QueryGenerator, retriever Retriever, opts ...EngineOption) *Engine {
	e := &Engine{
		profiler:          profiler,
		generator:         generator,
		retriever:         retriever,
		resultCap:         DefaultResultCap,
		sadnessThreshold:  DefaultSadnessThreshold,
		minParagraphWords: defaultMinParagraphWords,
		bookWorkers:       defaultBookWorkers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SceneResult is the outcome of a scene recommendation run. Candidates holds
// the full deduplicated admissible pool (with audio features) for callers
// that group or inspect beyond the capped recommendation list.
type SceneResult struct {
	Recommendations []Recommendation
	Candidates      []catalog.Track
	QueriesTried    int
	Stop            StopReason
}

// RecommendScene recommends tracks for a scene description: every query is
// retrieved, candidates are scored with the four-factor formula, deduplicated,
// ranked once at the end, and capped. An empty result is the normal no-match
// outcome, not an error.
func (e *Engine) RecommendScene(ctx context.Context, text string) SceneResult {
	prof := e.profiler.Build(ctx, text, profile.Scene)
	items := e.generator.Generate(ctx, prof, profile.Scene)

	seen := make(seenSet)
	var all []Recommendation
	var pool []catalog.Track
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		tracks := e.retriever.Retrieve(ctx, item.Query, false)
		recs, accepted := scoreCandidates(tracks, item.Reason, FourFactorScore, seen)
		all = append(all, recs...)
		pool = append(pool, accepted...)
	}

	sortByScore(all)
	return SceneResult{
		Recommendations: capResults(all, e.resultCap),
		Candidates:      pool,
		QueriesTried:    len(items),
		Stop:            StopExhausted,
	}
}

// ParagraphOutcome is the result of a single-paragraph run.
type ParagraphOutcome struct {
	Recommendations []Recommendation
	QueriesTried    int
	Stop            StopReason
}

// RecommendParagraph recommends up to the result cap of tracks for one
// paragraph. Queries are tried in priority order and retrieval stops as soon
// as the cap is filled. Candidates require a playable preview and are scored
// with the valence/energy average.
func (e *Engine) RecommendParagraph(ctx context.Context, text string) ParagraphOutcome {
	prof := e.profiler.Build(ctx, text, profile.Paragraph)
	items := e.generator.Generate(ctx, prof, profile.Paragraph)

	seen := make(seenSet)
	var picked []Recommendation
	stop := StopExhausted
	tried := 0

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		tried++

		tracks := e.retriever.Retrieve(ctx, item.Query, true)
		batch, _ := scoreCandidates(tracks, item.Reason, ValenceEnergyScore, seen)
		sortByScore(batch)

		for _, rec := range batch {
			picked = append(picked, rec)
			if e.resultCap > 0 && len(picked) >= e.resultCap {
				break
			}
		}
		if e.resultCap > 0 && len(picked) >= e.resultCap {
			stop = StopCapReached
			break
		}
	}

	sortByScore(picked)
	return ParagraphOutcome{
		Recommendations: capResults(picked, e.resultCap),
		QueriesTried:    tried,
		Stop:            stop,
	}
}

// StoryMatch is the explicit terminal result of a whole-story run. Found is
// false when every query was exhausted without a suitable candidate; that is
// a normal outcome, not an error.
type StoryMatch struct {
	Found          bool
	Recommendation Recommendation
	Valence        float64
	QueriesTried   int
	Stop           StopReason
}

// MatchStory finds a single track for a whole story. Queries are tried in
// priority order; each query's top candidate is checked against the sadness
// threshold and the run stops at the first candidate whose valence falls
// below it. No further retrievals happen after a match.
func (e *Engine) MatchStory(ctx context.Context, text string) StoryMatch {
	prof := e.profiler.Build(ctx, text, profile.Story)
	items := e.generator.Generate(ctx, prof, profile.Story)

	seen := make(seenSet)
	tried := 0

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		tried++

		tracks := e.retriever.Retrieve(ctx, item.Query, true)

		// Pick the query's top unseen candidate by score
		var top *catalog.Track
		var topScore float64
		for i := range tracks {
			key := identity(tracks[i])
			if key == "" || seen[key] {
				continue
			}
			score, ok := ValenceEnergyScore(tracks[i])
			if !ok {
				continue
			}
			seen[key] = true
			if top == nil || score > topScore {
				top = &tracks[i]
				topScore = score
			}
		}
		if top == nil {
			continue
		}

		if *top.Valence < e.sadnessThreshold {
			return StoryMatch{
				Found: true,
				Recommendation: Recommendation{
					Title:       top.Title,
					Artist:      top.PrimaryArtist(),
					URL:         top.URL,
					MoodScore:   topScore,
					MatchReason: item.Reason,
				},
				Valence:      *top.Valence,
				QueriesTried: tried,
				Stop:         StopMatched,
			}
		}
	}

	return StoryMatch{QueriesTried: tried, Stop: StopExhausted}
}
