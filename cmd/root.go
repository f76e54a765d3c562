package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "educoach",
	Short: "Skill development coach for students",
	Long: "educoach identifies a student's skill gaps from their work, recommends " +
		"practice exercises, tracks completions and builds development plans.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file (default: config.yaml in the data dir or working dir)")
	flags.String("db", "", "Path to SQLite database file (overrides EDUCOACH_DB env var)")
	flags.String("data-dir", "", "Data directory for the database and taxonomy files")
	flags.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(studentCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(exercisesCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(taxonomyCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
