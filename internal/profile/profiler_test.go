package profile

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/justestif/go-story-soundtracker/internal/nlu"
	"github.com/justestif/go-story-soundtracker/internal/taxonomy"
)

type fakeAnalyzer struct {
	analysis *nlu.Analysis
	err      error
	gotText  string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text string) (*nlu.Analysis, error) {
	f.gotText = text
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

type fakeSynonyms struct {
	synonyms map[string][]string
	err      error
}

func (f *fakeSynonyms) Synonyms(ctx context.Context, word string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.synonyms[word], nil
}

func fptr(v float64) *float64 { return &v }

func TestBuildEmptyText(t *testing.T) {
	p := New(&fakeAnalyzer{}, &fakeSynonyms{}, taxonomy.Default())

	for _, text := range []string{"", "   \n\t  "} {
		prof := p.Build(context.Background(), text, Story)
		if !prof.Empty() {
			t.Errorf("Build(%q) = %+v, want empty profile", text, prof)
		}
	}
}

func TestBuildNoSentences(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &nlu.Analysis{}}
	p := New(analyzer, &fakeSynonyms{}, taxonomy.Default())

	prof := p.Build(context.Background(), "???", Story)
	if !prof.Empty() {
		t.Errorf("profile = %+v, want empty", prof)
	}
}

func TestBuildAnalyzerFailureDegrades(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("service down")}
	p := New(analyzer, &fakeSynonyms{}, taxonomy.Default())

	prof := p.Build(context.Background(), "some text", Story)
	if !prof.Empty() {
		t.Errorf("profile = %+v, want empty on analyzer failure", prof)
	}
}

func TestBuildStory(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &nlu.Analysis{
		Sentences: []string{"s1"},
		Tokens: []nlu.Token{
			{Text: "dark", Pos: nlu.PosAdjective, Sentiment: fptr(-0.5)},
			{Text: "artifact", Pos: nlu.PosNoun},
			{Text: "ran", Pos: nlu.PosVerb},
			{Text: "quietly", Pos: nlu.PosAdverb, Sentiment: fptr(0)},
		},
		Entities: []nlu.Entity{
			{Text: "Mira", Label: nlu.LabelPerson},
			{Text: "Mira", Label: nlu.LabelPerson},
		},
		NounChunks: []string{"the artifact", "the colony", "the artifact"},
	}}
	p := New(analyzer, &fakeSynonyms{}, taxonomy.Default())

	prof := p.Build(context.Background(), "story text", Story)

	if !slices.Equal(prof.Topics, []string{"the artifact", "the colony"}) {
		t.Errorf("Topics = %v", prof.Topics)
	}
	// Story mode counts ADJ and NOUN
	if !slices.Equal(prof.MoodWords, []string{"dark", "artifact"}) {
		t.Errorf("MoodWords = %v", prof.MoodWords)
	}
	if len(prof.Entities) != 1 || prof.Entities[0].Text != "Mira" {
		t.Errorf("Entities = %v", prof.Entities)
	}
	// Sum of non-zero signals: -0.5; the explicit zero is skipped
	if prof.Sentiment != -0.5 {
		t.Errorf("Sentiment = %v, want -0.5", prof.Sentiment)
	}
	if prof.TagHits != nil {
		t.Errorf("TagHits = %v, want nil outside scene mode", prof.TagHits)
	}
}

func TestBuildParagraphMoodPos(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &nlu.Analysis{
		Sentences: []string{"s1"},
		Tokens: []nlu.Token{
			{Text: "dark", Pos: nlu.PosAdjective},
			{Text: "artifact", Pos: nlu.PosNoun},
			{Text: "ran", Pos: nlu.PosVerb},
			{Text: "quietly", Pos: nlu.PosAdverb},
		},
	}}
	p := New(analyzer, &fakeSynonyms{}, taxonomy.Default())

	prof := p.Build(context.Background(), "text", Paragraph)

	// Paragraph mode counts ADJ, VERB, and ADV but not NOUN
	if !slices.Equal(prof.MoodWords, []string{"dark", "ran", "quietly"}) {
		t.Errorf("MoodWords = %v", prof.MoodWords)
	}
}

func TestBuildSceneTagHits(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &nlu.Analysis{
		Sentences: []string{"s1"},
		Tokens: []nlu.Token{
			{Text: "beaches", Pos: nlu.PosNoun}, // substring hit on "beach"
			{Text: "ocean", Pos: nlu.PosNoun},   // synonym hit on "underwater"
			{Text: "calm", Pos: nlu.PosAdjective},
		},
	}}
	synonyms := &fakeSynonyms{synonyms: map[string][]string{
		"underwater": {"ocean", "submarine"},
	}}
	p := New(analyzer, synonyms, taxonomy.Default())

	prof := p.Build(context.Background(), "The Beaches and the ocean", Scene)

	if analyzer.gotText != "the beaches and the ocean" {
		t.Errorf("scene text not lowercased: %q", analyzer.gotText)
	}

	hits := prof.TagHits[taxonomy.Location]
	if !slices.Contains(hits, "beach") {
		t.Errorf("location hits = %v, missing beach", hits)
	}
	if !slices.Contains(hits, "underwater") {
		t.Errorf("location hits = %v, missing underwater", hits)
	}
}

func TestBuildSceneSynonymFailureStillMatchesSubstring(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &nlu.Analysis{
		Sentences: []string{"s1"},
		Tokens:    []nlu.Token{{Text: "stormy", Pos: nlu.PosAdjective}},
	}}
	p := New(analyzer, &fakeSynonyms{err: errors.New("lexicon offline")}, taxonomy.Default())

	prof := p.Build(context.Background(), "a stormy night", Scene)

	if !slices.Contains(prof.TagHits[taxonomy.Weather], "storm") {
		t.Errorf("weather hits = %v, want storm via substring", prof.TagHits[taxonomy.Weather])
	}
}

func TestWithAggregator(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &nlu.Analysis{
		Sentences: []string{"s1"},
		Tokens: []nlu.Token{
			{Text: "a", Pos: nlu.PosNoun, Sentiment: fptr(0.25)},
			{Text: "b", Pos: nlu.PosNoun, Sentiment: fptr(0.75)},
		},
	}}
	p := New(analyzer, &fakeSynonyms{}, taxonomy.Default(), WithAggregator(MeanNonZero))

	prof := p.Build(context.Background(), "text", Story)
	if prof.Sentiment != 0.5 {
		t.Errorf("Sentiment = %v, want mean 0.5", prof.Sentiment)
	}
}

func TestAggregators(t *testing.T) {
	signals := []float64{0.5, 0, -0.25, 0.5}

	if got := SumNonZero(signals); got != 0.75 {
		t.Errorf("SumNonZero = %v, want 0.75", got)
	}
	if got := MeanNonZero([]float64{0.25, 0, 0.75}); got != 0.5 {
		t.Errorf("MeanNonZero = %v, want 0.5", got)
	}
	if got := MeanNonZero([]float64{0, 0}); got != 0 {
		t.Errorf("MeanNonZero of zeros = %v, want 0", got)
	}
}
