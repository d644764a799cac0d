package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent generate attempts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(s, true)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		w := cmd.OutOrStdout()
		events, err := st.EventRepo().QueryGenerations(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Fprintln(w, "No generate attempts recorded.")
			return nil
		}

		fmt.Fprintf(w, "%-5s  %-19s  %-4s  %-6s  %-15s  %-10s  %5s  %7s  %s\n",
			"ID", "Timestamp", "Year", "Diff", "Type", "Topic", "Qs", "Ms", "Result")
		fmt.Fprintln(w, strings.Repeat("─", 100))

		for _, e := range events {
			if failedOnly && e.Success {
				continue
			}
			result := "✓"
			if !e.Success {
				result = "✗ " + e.ErrorKind
				if e.StatusCode != 0 {
					result = fmt.Sprintf("✗ HTTP %d", e.StatusCode)
				}
			}
			fmt.Fprintf(w, "%-5d  %-19s  %-4d  %-6s  %-15s  %-10s  %5d  %7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.YearLevel,
				e.Difficulty,
				truncate(e.QuestionType, 15),
				e.Topic,
				e.QuestionCount,
				e.LatencyMs,
				result,
			)
		}

		stats, err := st.EventRepo().GenerationStats(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		fmt.Fprintln(w, strings.Repeat("─", 100))
		fmt.Fprintf(w, "%d attempts, %d succeeded, %d failed, %d questions, avg %dms\n",
			stats.Total, stats.Succeeded, stats.Failed, stats.Questions, stats.AvgLatencyMs)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().Bool("failed", false, "Only show failed attempts")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
