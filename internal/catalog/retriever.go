package catalog

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultSearchLimit bounds raw results fetched per query. A cost
	// tunable, not a correctness requirement.
	DefaultSearchLimit = 50

	// defaultCallTimeout bounds each catalog round trip.
	defaultCallTimeout = 15 * time.Second

	// Catalog request pacing.
	defaultRequestsPerSec = 5
	defaultBurst          = 2
)

// Searcher abstracts catalog search for testing.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Track, error)
}

// FeatureSource abstracts audio-feature lookup for testing.
type FeatureSource interface {
	AudioFeatures(ctx context.Context, ids []string) (map[string]Features, error)
}

// FeatureCache is an optional persistent cache consulted before the catalog.
// Cache failures are logged and ignored; the catalog remains authoritative.
type FeatureCache interface {
	Get(ctx context.Context, ids []string) (map[string]Features, error)
	Put(ctx context.Context, features map[string]Features) error
}

// Retriever turns one search query into admissible track candidates.
//
// Candidates are admissible when at least one of their artists is on the
// chosen-artist allow-list and, when requested, they carry a playable
// preview. Collaborator failures degrade to zero candidates for the query
// and never abort the surrounding pipeline.
type Retriever struct {
	searcher    Searcher
	features    FeatureSource
	cache       FeatureCache
	allowed     map[string]bool
	searchLimit int
	callTimeout time.Duration
	limiter     *rate.Limiter
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithSearchLimit overrides the raw per-query result bound.
func WithSearchLimit(n int) RetrieverOption {
	return func(r *Retriever) {
		if n > 0 {
			r.searchLimit = n
		}
	}
}

// WithFeatureCache attaches a persistent audio-feature cache.
func WithFeatureCache(cache FeatureCache) RetrieverOption {
	return func(r *Retriever) {
		r.cache = cache
	}
}

// WithCallTimeout overrides the per-call timeout.
func WithCallTimeout(d time.Duration) RetrieverOption {
	return func(r *Retriever) {
		if d > 0 {
			r.callTimeout = d
		}
	}
}

// NewRetriever creates a Retriever filtering by the chosen-artist allow-list.
func NewRetriever(searcher Searcher, features FeatureSource, chosenArtists []string, opts ...RetrieverOption) *Retriever {
	allowed := make(map[string]bool, len(chosenArtists))
	for _, name := range chosenArtists {
		allowed[name] = true
	}

	r := &Retriever{
		searcher:    searcher,
		features:    features,
		allowed:     allowed,
		searchLimit: DefaultSearchLimit,
		callTimeout: defaultCallTimeout,
		limiter:     rate.NewLimiter(rate.Limit(defaultRequestsPerSec), defaultBurst),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve searches the catalog for one query and returns admissible
// candidates with audio features attached, unsorted. Tracks whose feature
// fetch fails or returns nothing are dropped. A failed search yields zero
// candidates, never an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, requirePreview bool) []Track {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil
	}

	searchCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	found, err := r.searcher.Search(searchCtx, query, r.searchLimit)
	if err != nil {
		log.Printf("catalog: search %q failed, skipping query: %v", query, err)
		return nil
	}

	var admissible []Track
	for _, t := range found {
		if !r.artistAllowed(t) {
			continue
		}
		if requirePreview && t.PreviewURL == "" {
			continue
		}
		admissible = append(admissible, t)
	}

	if len(admissible) == 0 {
		return nil
	}

	featuresByID := r.fetchFeatures(ctx, admissible)

	// Only tracks with fetched features survive
	candidates := admissible[:0]
	for _, t := range admissible {
		f, ok := featuresByID[t.ID]
		if !ok {
			continue
		}
		applyFeatures(&t, f)
		candidates = append(candidates, t)
	}
	return candidates
}

// artistAllowed reports whether the track's artist set intersects the
// allow-list. An empty allow-list admits every artist.
func (r *Retriever) artistAllowed(t Track) bool {
	if len(r.allowed) == 0 {
		return true
	}
	for _, artist := range t.Artists {
		if r.allowed[artist] {
			return true
		}
	}
	return false
}

// fetchFeatures resolves audio features, consulting the cache first.
func (r *Retriever) fetchFeatures(ctx context.Context, tracks []Track) map[string]Features {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}

	result := make(map[string]Features, len(ids))

	if r.cache != nil {
		cached, err := r.cache.Get(ctx, ids)
		if err != nil {
			log.Printf("catalog: feature cache read failed: %v", err)
		} else {
			for id, f := range cached {
				result[id] = f
			}
		}
	}

	var missing []string
	for _, id := range ids {
		if _, ok := result[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return result
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	fetched, err := r.features.AudioFeatures(fetchCtx, missing)
	if err != nil {
		log.Printf("catalog: audio feature fetch failed, dropping %d candidates: %v", len(missing), err)
		return result
	}

	for id, f := range fetched {
		result[id] = f
	}

	if r.cache != nil && len(fetched) > 0 {
		if err := r.cache.Put(ctx, fetched); err != nil {
			log.Printf("catalog: feature cache write failed: %v", err)
		}
	}

	return result
}
