// Package ingest extracts narrative units from source documents.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultMinWords is the word count below which a paragraph is skipped.
const DefaultMinWords = 20

// ExtractParagraphs splits a plain-text document into paragraphs on blank
// lines. Paragraphs are whitespace-trimmed; empty ones are dropped.
func ExtractParagraphs(r io.Reader) ([]string, error) {
	var paragraphs []string
	var current strings.Builder

	flush := func() {
		p := strings.TrimSpace(current.String())
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
		current.Reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	flush()

	return paragraphs, nil
}

// FilterShort drops paragraphs with fewer than minWords words.
// Short fragments carry too little signal to profile.
func FilterShort(paragraphs []string, minWords int) []string {
	if minWords <= 0 {
		return paragraphs
	}
	var kept []string
	for _, p := range paragraphs {
		if len(strings.Fields(p)) >= minWords {
			kept = append(kept, p)
		}
	}
	return kept
}
