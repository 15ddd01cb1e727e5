package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/teachme/internal/lesson"
	"github.com/abhisek/teachme/internal/logger"
	"github.com/abhisek/teachme/internal/tui"
)

var studyCmd = &cobra.Command{
	Use:   "study <topic>",
	Short: "Read a lesson and summarize it until nothing is missing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, _ := cmd.Flags().GetString("depth")

		// The TUI owns the terminal, so nothing may log to it.
		d, err := buildDeps(cmd.Context(), cmd, true)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := logger.ToContext(cmd.Context(), d.log)
		return tui.Run(ctx, lesson.Request{Topic: args[0], Depth: depth}, d.lessons, d.assessor)
	},
}

func init() {
	studyCmd.Flags().StringP("depth", "d", "briefly", "Lesson depth: briefly, thorough or advanced")
}
