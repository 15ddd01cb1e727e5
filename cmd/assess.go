package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/teachme/internal/assessment"
	"github.com/abhisek/teachme/internal/logger"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Grade a summary against the text it summarizes",
	Long: `Grade a summary against the original text and print the feedback as JSON.
Pass the feedback from a previous round with --previous to check a revised
summary against the points that were still missing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		originalPath, _ := cmd.Flags().GetString("original")
		summaryPath, _ := cmd.Flags().GetString("summary")
		previousPath, _ := cmd.Flags().GetString("previous")

		original, err := os.ReadFile(originalPath)
		if err != nil {
			return fmt.Errorf("read original: %w", err)
		}
		summary, err := os.ReadFile(summaryPath)
		if err != nil {
			return fmt.Errorf("read summary: %w", err)
		}
		if strings.TrimSpace(string(summary)) == "" {
			return fmt.Errorf("summary is empty")
		}

		state := assessment.Initial()
		if previousPath != "" {
			raw, err := os.ReadFile(previousPath)
			if err != nil {
				return fmt.Errorf("read previous feedback: %w", err)
			}
			var prev assessment.Feedback
			if err := json.Unmarshal(raw, &prev); err != nil {
				return fmt.Errorf("parse previous feedback: %w", err)
			}
			state = assessment.StateFor(&prev)
		}

		d, err := buildDeps(cmd.Context(), cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()
		ctx := logger.ToContext(cmd.Context(), d.log)

		feedback := d.assessor.Assess(ctx, string(original), string(summary), state)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(feedback)
	},
}

func init() {
	assessCmd.Flags().String("original", "", "Path to the original text")
	assessCmd.Flags().String("summary", "", "Path to the learner's summary")
	assessCmd.Flags().String("previous", "", "Path to feedback JSON from the previous round")
	_ = assessCmd.MarkFlagRequired("original")
	_ = assessCmd.MarkFlagRequired("summary")
}
