package recommend

import (
	"context"
	"strings"
	"testing"

	"github.com/justestif/go-story-soundtracker/internal/catalog"
)

func TestRecommendBook(t *testing.T) {
	longA := strings.Repeat("the storm raged over the dark sea all through the night ", 3)
	longB := strings.Repeat("sunlight streamed through the open window of the cottage ", 3)
	doc := longA + "\n\n" + "Too short." + "\n\n" + longB

	ret := &fakeRetriever{tracks: map[string][]catalog.Track{
		"q": {track("1", "One", 0.5, 0.5)},
	}}
	e := newEngine(&fakeGenerator{items: items("q")}, ret)

	results, err := e.RecommendBook(context.Background(), strings.NewReader(doc))
	if err != nil {
		t.Fatalf("RecommendBook() error: %v", err)
	}

	// The short paragraph is skipped before profiling
	if len(results) != 2 {
		t.Fatalf("got %d paragraph results, want 2", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d; results must be in document order", i, r.Index)
		}
	}
	if !strings.HasPrefix(results[0].Text, "the storm") {
		t.Errorf("first paragraph = %q", results[0].Text)
	}
}

func TestRecommendBookUnreadable(t *testing.T) {
	e := newEngine(&fakeGenerator{}, &fakeRetriever{})

	if _, err := e.RecommendBook(context.Background(), failingReader{}); err == nil {
		t.Error("RecommendBook() should fail on unreadable input")
	}
}

func TestRecommendBookEmptyDocument(t *testing.T) {
	e := newEngine(&fakeGenerator{}, &fakeRetriever{})

	results, err := e.RecommendBook(context.Background(), strings.NewReader(""))
	if err != nil {
		t.Fatalf("RecommendBook() error: %v", err)
	}
	if results != nil {
		t.Errorf("results = %v, want nil", results)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errString("disk error")
}

type errString string

func (e errString) Error() string { return string(e) }
