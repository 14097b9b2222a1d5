package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/justestif/go-story-soundtracker/internal/moodgroup"
	"github.com/justestif/go-story-soundtracker/internal/report"
)

var sceneCmd = &cobra.Command{
	Use:   "scene [file]",
	Short: "Recommends tracks for a scene description",
	Long: `Reads a scene description from the named file or stdin, matches it
against the mood taxonomy, and recommends the highest-scoring tracks. With
--group the full candidate pool is also clustered into mood groups.`,
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

		result := engine.RecommendScene(cmd.Context(), text)
		if err := report.Recommendations(os.Stdout, result.Recommendations); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}

		if viper.GetBool("group") {
			cfg := moodgroup.DefaultConfig()
			cfg.NumGroups = viper.GetInt("num-groups")
			groups, outliers := moodgroup.ByMood(result.Candidates, cfg)
			if err := report.MoodGroups(os.Stdout, groups, outliers); err != nil {
				return fmt.Errorf("writing mood groups: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sceneCmd)

	sceneCmd.Flags().Bool("group", false, "cluster the candidate pool into mood groups")
	viper.BindPFlag("group", sceneCmd.Flags().Lookup("group"))

	sceneCmd.Flags().Int("num-groups", 3, "number of mood groups to form")
	viper.BindPFlag("num-groups", sceneCmd.Flags().Lookup("num-groups"))
}
