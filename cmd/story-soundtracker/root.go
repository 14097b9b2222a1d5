package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "story-soundtracker",
	Short: "Matches narrative text to music",
	Long: `Profiles narrative text with an NLU service, expands the profile into
search queries, and recommends tracks from the Spotify catalog scored by
how well their audio features fit the text's mood.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSlice(
		"artists", nil, "restrict candidates to these artist names (empty allows all)")
	viper.BindPFlag("artists", rootCmd.PersistentFlags().Lookup("artists"))

	rootCmd.PersistentFlags().Int(
		"cap", 3, "maximum recommendations per paragraph or scene")
	viper.BindPFlag("cap", rootCmd.PersistentFlags().Lookup("cap"))

	rootCmd.PersistentFlags().Float64(
		"sadness-threshold", 0.5, "story mode matches the first track with valence below this")
	viper.BindPFlag("sadness-threshold", rootCmd.PersistentFlags().Lookup("sadness-threshold"))

	rootCmd.PersistentFlags().Int(
		"min-words", 20, "skip book paragraphs shorter than this many words")
	viper.BindPFlag("min-words", rootCmd.PersistentFlags().Lookup("min-words"))

	rootCmd.PersistentFlags().String(
		"taxonomy", "", "path to a JSON taxonomy file (default: built-in taxonomy)")
	viper.BindPFlag("taxonomy", rootCmd.PersistentFlags().Lookup("taxonomy"))

	rootCmd.PersistentFlags().String(
		"database-url", "", "PostgreSQL URL for the audio feature cache (default: $DATABASE_URL; empty disables caching)")
	viper.BindPFlag("database-url", rootCmd.PersistentFlags().Lookup("database-url"))
	viper.BindEnv("database-url", "DATABASE_URL")
}

// readInput returns the narrative text to process: the named file when an
// argument was given, otherwise stdin.
func readInput(args []string) (string, error) {
	r, closeFn, err := openInput(args)
	if err != nil {
		return "", err
	}
	defer closeFn()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("input is empty")
	}
	return text, nil
}

// openInput opens the named file, or stdin when no argument was given.
func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", args[0], err)
	}
	return f, func() { f.Close() }, nil
}
