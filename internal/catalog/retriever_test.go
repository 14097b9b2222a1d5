package catalog

import (
	"context"
	"errors"
	"testing"
)

type fakeSearcher struct {
	tracks   map[string][]Track
	err      error
	gotLimit int
}

func (f *fakeSearcher) Search(ctx context.Context, query string, limit int) ([]Track, error) {
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.tracks[query], nil
}

type fakeFeatureSource struct {
	features map[string]Features
	err      error
	calls    int
}

func (f *fakeFeatureSource) AudioFeatures(ctx context.Context, ids []string) (map[string]Features, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	result := make(map[string]Features)
	for _, id := range ids {
		if feat, ok := f.features[id]; ok {
			result[id] = feat
		}
	}
	return result, nil
}

type fakeCache struct {
	stored map[string]Features
	getErr error
	putErr error
}

func (f *fakeCache) Get(ctx context.Context, ids []string) (map[string]Features, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	result := make(map[string]Features)
	for _, id := range ids {
		if feat, ok := f.stored[id]; ok {
			result[id] = feat
		}
	}
	return result, nil
}

func (f *fakeCache) Put(ctx context.Context, features map[string]Features) error {
	if f.putErr != nil {
		return f.putErr
	}
	if f.stored == nil {
		f.stored = make(map[string]Features)
	}
	for id, feat := range features {
		f.stored[id] = feat
	}
	return nil
}

func feats(valence, energy float64) Features {
	return Features{Valence: &valence, Energy: &energy}
}

func TestRetrieveFiltersByAllowList(t *testing.T) {
	searcher := &fakeSearcher{tracks: map[string][]Track{
		"epic": {
			{ID: "1", Title: "Time", Artists: []string{"Hans Zimmer"}},
			{ID: "2", Title: "Pop Hit", Artists: []string{"Someone Else"}},
			{ID: "3", Title: "Duet", Artists: []string{"Nobody", "Max Richter"}},
		},
	}}
	features := &fakeFeatureSource{features: map[string]Features{
		"1": feats(0.3, 0.5),
		"3": feats(0.6, 0.4),
	}}

	r := NewRetriever(searcher, features, []string{"Hans Zimmer", "Max Richter"})

	got := r.Retrieve(context.Background(), "epic", false)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("candidates = %v, %v", got[0].ID, got[1].ID)
	}
	if got[0].Valence == nil || *got[0].Valence != 0.3 {
		t.Errorf("features not applied: %+v", got[0])
	}
}

func TestRetrieveEmptyAllowListAdmitsEveryArtist(t *testing.T) {
	searcher := &fakeSearcher{tracks: map[string][]Track{
		"q": {
			{ID: "1", Artists: []string{"Anyone"}},
			{ID: "2", Artists: []string{"Anyone Else"}},
		},
	}}
	features := &fakeFeatureSource{features: map[string]Features{
		"1": feats(0.5, 0.5),
		"2": feats(0.5, 0.5),
	}}

	r := NewRetriever(searcher, features, nil)

	if got := r.Retrieve(context.Background(), "q", false); len(got) != 2 {
		t.Errorf("got %d candidates, want 2 with no allow-list", len(got))
	}
}

func TestRetrieveRequiresPreview(t *testing.T) {
	searcher := &fakeSearcher{tracks: map[string][]Track{
		"calm": {
			{ID: "1", Artists: []string{"Nils Frahm"}, PreviewURL: "https://preview/1"},
			{ID: "2", Artists: []string{"Nils Frahm"}},
		},
	}}
	features := &fakeFeatureSource{features: map[string]Features{
		"1": feats(0.5, 0.5),
		"2": feats(0.5, 0.5),
	}}

	r := NewRetriever(searcher, features, []string{"Nils Frahm"})

	got := r.Retrieve(context.Background(), "calm", true)
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("candidates = %v, want only the previewable track", got)
	}
}

func TestRetrieveDropsFeaturelessTracks(t *testing.T) {
	searcher := &fakeSearcher{tracks: map[string][]Track{
		"q": {
			{ID: "1", Artists: []string{"A"}},
			{ID: "2", Artists: []string{"A"}},
		},
	}}
	features := &fakeFeatureSource{features: map[string]Features{
		"2": feats(0.5, 0.5),
	}}

	r := NewRetriever(searcher, features, []string{"A"})

	got := r.Retrieve(context.Background(), "q", false)
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("candidates = %v, want only track 2", got)
	}
}

func TestRetrieveSearchFailureYieldsZeroCandidates(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("catalog down")}
	r := NewRetriever(searcher, &fakeFeatureSource{}, []string{"A"})

	if got := r.Retrieve(context.Background(), "q", false); got != nil {
		t.Errorf("candidates = %v, want nil on search failure", got)
	}
}

func TestRetrieveFeatureFailureYieldsZeroCandidates(t *testing.T) {
	searcher := &fakeSearcher{tracks: map[string][]Track{
		"q": {{ID: "1", Artists: []string{"A"}}},
	}}
	features := &fakeFeatureSource{err: errors.New("features down")}

	r := NewRetriever(searcher, features, []string{"A"})

	if got := r.Retrieve(context.Background(), "q", false); len(got) != 0 {
		t.Errorf("candidates = %v, want none on feature failure", got)
	}
}

func TestRetrieveSearchLimit(t *testing.T) {
	searcher := &fakeSearcher{}
	r := NewRetriever(searcher, &fakeFeatureSource{}, nil, WithSearchLimit(10))

	r.Retrieve(context.Background(), "q", false)
	if searcher.gotLimit != 10 {
		t.Errorf("search limit = %d, want 10", searcher.gotLimit)
	}
}

func TestRetrieveUsesFeatureCache(t *testing.T) {
	searcher := &fakeSearcher{tracks: map[string][]Track{
		"q": {
			{ID: "1", Artists: []string{"A"}},
			{ID: "2", Artists: []string{"A"}},
		},
	}}
	features := &fakeFeatureSource{features: map[string]Features{
		"2": feats(0.7, 0.2),
	}}
	cache := &fakeCache{stored: map[string]Features{
		"1": feats(0.1, 0.9),
	}}

	r := NewRetriever(searcher, features, []string{"A"}, WithFeatureCache(cache))

	got := r.Retrieve(context.Background(), "q", false)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if *got[0].Valence != 0.1 {
		t.Errorf("cached features not used: %+v", got[0])
	}

	// Freshly fetched features get written back
	if _, ok := cache.stored["2"]; !ok {
		t.Error("fetched features not persisted to cache")
	}
}

func TestRetrieveCacheFailureFallsBackToCatalog(t *testing.T) {
	searcher := &fakeSearcher{tracks: map[string][]Track{
		"q": {{ID: "1", Artists: []string{"A"}}},
	}}
	features := &fakeFeatureSource{features: map[string]Features{
		"1": feats(0.5, 0.5),
	}}
	cache := &fakeCache{getErr: errors.New("db down"), putErr: errors.New("db down")}

	r := NewRetriever(searcher, features, []string{"A"}, WithFeatureCache(cache))

	got := r.Retrieve(context.Background(), "q", false)
	if len(got) != 1 {
		t.Errorf("got %d candidates, want 1 despite cache failure", len(got))
	}
}
