package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/generation"
	"github.com/abhisek/mathgen/internal/questions"
	"github.com/abhisek/mathgen/internal/store"
)

// fieldFlags maps config fields to generate flags.
var fieldFlags = []struct {
	field config.Field
	flag  string
	usage string
}{
	{config.FieldYearLevel, "year", "Year level 1-6"},
	{config.FieldDifficulty, "difficulty", "easy, medium or hard"},
	{config.FieldQuestionType, "type", "multiple_choice, numerical, comparison or problem_solving"},
	{config.FieldTopic, "topic", "arithmetic, algebra or geometry"},
	{config.FieldNumQuestions, "count", "Number of questions: 5, 10 or 20"},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one batch of questions and print it",
	Example: "  mathgen generate --year 4 --topic geometry --count 5\n" +
		"  mathgen generate --type numerical --reveal --markdown",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(s, false)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		cfg, err := s.InitialConfig()
		if err != nil {
			return err
		}
		cfg, err = applyFieldFlags(cmd, cfg)
		if err != nil {
			return err
		}

		st, _ := openStore(s, false)
		var repo store.EventRepo
		if st != nil {
			defer st.Close()
			repo = st.EventRepo()
		}

		ctrl := newController(s, repo, logger)
		defer ctrl.Close()
		out, err := ctrl.Generate(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if !out.Success() {
			return fmt.Errorf("%s (%w)", generation.Notice(out.Err), out.Err)
		}

		reveal, _ := cmd.Flags().GetBool("reveal")
		asJSON, _ := cmd.Flags().GetBool("json")
		markdown, _ := cmd.Flags().GetBool("markdown")
		w := cmd.OutOrStdout()
		items := ctrl.Questions()

		switch {
		case asJSON:
			return writeJSON(w, items)
		case markdown:
			return writeMarkdown(w, cfg.Summary(), items, reveal)
		default:
			writePlain(w, cfg.Summary(), items, reveal)
			return nil
		}
	},
}

func init() {
	for _, f := range fieldFlags {
		generateCmd.Flags().String(f.flag, "", f.usage)
	}
	generateCmd.Flags().Bool("reveal", false, "Print answers and explanations")
	generateCmd.Flags().Bool("markdown", false, "Render the worksheet as styled markdown")
	generateCmd.Flags().Bool("json", false, "Print the raw response payload as JSON")
	generateCmd.MarkFlagsMutuallyExclusive("markdown", "json")
}

// applyFieldFlags sets every field whose flag was given. Values go through
// config.Config.Set, so invalid input is reported with the field name.
func applyFieldFlags(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	for _, f := range fieldFlags {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		raw, _ := cmd.Flags().GetString(f.flag)
		next, err := cfg.Set(f.field, raw)
		if err != nil {
			return cfg, fmt.Errorf("--%s: %w", f.flag, err)
		}
		cfg = next
	}
	return cfg, nil
}

func writeJSON(w io.Writer, items []questions.Item) error {
	qs := make([]questions.Question, len(items))
	for i, it := range items {
		qs[i] = it.Question
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(questions.NewPayload(qs))
}

func writeMarkdown(w io.Writer, title string, items []questions.Item, reveal bool) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(questions.Markdown(title, items, reveal))
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func writePlain(w io.Writer, title string, items []questions.Item, reveal bool) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", 60))
	if len(items) == 0 {
		fmt.Fprintln(w, "No questions generated.")
		return
	}
	for i, it := range items {
		q := it.Question
		fmt.Fprintf(w, "\n%d. %s\n", i+1, q.Text)
		for _, opt := range q.Options {
			fmt.Fprintf(w, "     %s\n", opt)
		}
		if reveal {
			fmt.Fprintf(w, "   Answer: %s\n", q.CorrectAnswer)
			if q.Explanation != "" {
				fmt.Fprintf(w, "   %s\n", q.Explanation)
			}
		}
	}
}
