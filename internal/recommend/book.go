package recommend

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/justestif/go-story-soundtracker/internal/ingest"
)

const (
	defaultMinParagraphWords = ingest.DefaultMinWords
	defaultBookWorkers       = 4
)

// ParagraphResult pairs a book paragraph with its recommendations.
type ParagraphResult struct {
	Index   int
	Text    string
	Outcome ParagraphOutcome
}

// RecommendBook runs the paragraph pipeline for every paragraph of a
// document. Paragraphs below the configured minimum word count are skipped
// before profiling. Paragraphs are independent and processed by a bounded
// worker pool; results come back in document order. One paragraph failing to
// produce recommendations never affects the others.
//
// Only an unreadable document is an error; it aborts before any profiling.
func (e *Engine) RecommendBook(ctx context.Context, r io.Reader) ([]ParagraphResult, error) {
	paragraphs, err := ingest.ExtractParagraphs(r)
	if err != nil {
		return nil, fmt.Errorf("extracting paragraphs: %w", err)
	}
	paragraphs = ingest.FilterShort(paragraphs, e.minParagraphWords)
	if len(paragraphs) == 0 {
		return nil, nil
	}

	results := make([]ParagraphResult, len(paragraphs))

	type workItem struct {
		index int
		text  string
	}
	workCh := make(chan workItem, len(paragraphs))
	for i, p := range paragraphs {
		workCh <- workItem{index: i, text: p}
	}
	close(workCh)

	workers := e.bookWorkers
	if workers > len(paragraphs) {
		workers = len(paragraphs)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workCh {
				results[work.index] = ParagraphResult{
					Index:   work.index,
					Text:    work.text,
					Outcome: e.RecommendParagraph(ctx, work.text),
				}
			}
		}()
	}
	wg.Wait()

	return results, nil
}
