package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/teachme/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "teachme",
	Short:        "Turn a topic or a document into an illustrated lesson",
	Long:         "teachme plans subtopics for a topic, writes an illustrated lesson, and grades your summaries of it until nothing is missing.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DB_PATH env var)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Path to a .env file to load before reading the environment")

	rootCmd.AddCommand(teachCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
