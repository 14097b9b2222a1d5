// Package report renders pipeline results for the CLI.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/justestif/go-story-soundtracker/internal/catalog"
	"github.com/justestif/go-story-soundtracker/internal/moodgroup"
	"github.com/justestif/go-story-soundtracker/internal/recommend"
)

// Story writes the single-track story result: the track URL when a match was
// found, or a plain no-match line.
func Story(w io.Writer, match recommend.StoryMatch) error {
	if !match.Found {
		_, err := fmt.Fprintf(w, "No suitable track found (%d queries tried)\n", match.QueriesTried)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s - %s (valence %.2f, %s)\n",
		match.Recommendation.Title, match.Recommendation.Artist,
		match.Valence, match.Recommendation.MatchReason); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, match.Recommendation.URL)
	return err
}

// Recommendations renders a scored recommendation list as a table.
func Recommendations(w io.Writer, recs []recommend.Recommendation) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "No recommendations")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Title", "Artist", "Score", "Reason", "URL"})
	for _, rec := range recs {
		if err := table.Append([]string{
			rec.Title,
			rec.Artist,
			strconv.FormatFloat(rec.MoodScore, 'f', 2, 64),
			rec.MatchReason,
			rec.URL,
		}); err != nil {
			return fmt.Errorf("rendering recommendation row: %w", err)
		}
	}
	return table.Render()
}

// Book renders the per-paragraph results of a whole-document run. Each
// paragraph gets a heading with its index and a short excerpt, then its
// recommendation table.
func Book(w io.Writer, results []recommend.ParagraphResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No paragraphs to report")
		return err
	}

	for _, pr := range results {
		if _, err := fmt.Fprintf(w, "\n### Paragraph %d: %s\n", pr.Index+1, excerpt(pr.Text, 60)); err != nil {
			return err
		}
		if err := Recommendations(w, pr.Outcome.Recommendations); err != nil {
			return err
		}
	}
	return nil
}

// MoodGroups renders mood groups with one table per group and a trailing
// outlier table when any tracks could not be grouped.
func MoodGroups(w io.Writer, groups []moodgroup.Group, outliers []catalog.Track) error {
	for _, g := range groups {
		if _, err := fmt.Fprintf(w, "\n### %s (%d tracks)\n", g.Name, len(g.Tracks)); err != nil {
			return err
		}

		table := tablewriter.NewWriter(w)
		table.Header([]string{"Title", "Artist", "Valence", "Energy"})
		for _, t := range g.Tracks {
			if err := table.Append([]string{
				t.Title,
				t.PrimaryArtist(),
				formatFeature(t.Valence),
				formatFeature(t.Energy),
			}); err != nil {
				return fmt.Errorf("rendering group row: %w", err)
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if len(outliers) > 0 {
		if _, err := fmt.Fprintf(w, "\n### Ungrouped (%d tracks)\n", len(outliers)); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Title", "Artist", "Valence", "Energy"})
		for _, t := range outliers {
			if err := table.Append([]string{
				t.Title,
				t.PrimaryArtist(),
				formatFeature(t.Valence),
				formatFeature(t.Energy),
			}); err != nil {
				return fmt.Errorf("rendering outlier row: %w", err)
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	return nil
}

func formatFeature(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// excerpt shortens text to at most n runes for headings.
func excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
