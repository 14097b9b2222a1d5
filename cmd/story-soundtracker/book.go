package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justestif/go-story-soundtracker/internal/report"
)

var bookCmd = &cobra.Command{
	Use:   "book [file]",
	Short: "Recommends tracks for every paragraph of a document",
	Long: `Reads a plain-text document from the named file or stdin, splits it on
blank lines, and recommends tracks for each paragraph long enough to carry a
mood. Paragraphs are processed concurrently; results come back in document
order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, closeFn, err := openInput(args)
		if err != nil {
			return err
		}
		defer closeFn()

		engine, cleanup, err := buildEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		results, err := engine.RecommendBook(cmd.Context(), r)
		if err != nil {
			return err
		}
		if err := report.Book(os.Stdout, results); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bookCmd)
}
