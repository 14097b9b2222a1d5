package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justestif/go-story-soundtracker/internal/report"
)

var storyCmd = &cobra.Command{
	Use:   "story [file]",
	Short: "Finds one fitting track for a whole story",
	Long: `Reads a story from the named file or stdin and searches for a single
track whose valence falls below the sadness threshold. The search stops at
the first match.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args)
		if err != nil {
			return err
		}

		engine, cleanup, err := buildEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		match := engine.MatchStory(cmd.Context(), text)
		if err := report.Story(os.Stdout, match); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storyCmd)
}
