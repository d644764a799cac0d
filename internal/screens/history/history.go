package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/router"
	"github.com/abhisek/mathgen/internal/screen"
	"github.com/abhisek/mathgen/internal/store"
	"github.com/abhisek/mathgen/internal/ui/layout"
	"github.com/abhisek/mathgen/internal/ui/theme"
)

// pageSize is the number of attempts loaded.
const pageSize = 50

type historyLoadedMsg struct {
	Attempts []store.GenerationEvent
	Stats    store.GenerationStats
	Err      error
}

// HistoryScreen lists recent generate attempts.
type HistoryScreen struct {
	eventRepo store.EventRepo
	attempts  []store.GenerationEvent
	stats     store.GenerationStats
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		attempts, err := repo.QueryGenerations(ctx, store.QueryOpts{Limit: pageSize})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Without stats the list is still shown.
		stats, err := repo.GenerationStats(ctx)
		if err != nil {
			return historyLoadedMsg{Attempts: attempts}
		}
		return historyLoadedMsg{Attempts: attempts, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No questions generated yet.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Dim.Render(statsLine(s.stats))))
	b.WriteString("\n\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if !a.Success {
			style = style.Foreground(theme.Error)
		}
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+attemptLine(a))))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, detail := range attemptDetails(a) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					theme.Hint.Render("    "+detail)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func statsLine(st store.GenerationStats) string {
	if st.Total == 0 {
		return ""
	}
	return fmt.Sprintf("%d attempts  %d succeeded  %d failed  %d questions  avg %dms",
		st.Total, st.Succeeded, st.Failed, st.Questions, st.AvgLatencyMs)
}

func attemptLine(a store.GenerationEvent) string {
	cfg := config.Config{
		YearLevel:  a.YearLevel,
		Difficulty: config.Difficulty(a.Difficulty),
		Topic:      config.Topic(a.Topic),
	}
	result := fmt.Sprintf("%d questions", a.QuestionCount)
	if !a.Success {
		result = "failed"
		if a.StatusCode != 0 {
			result = fmt.Sprintf("failed (HTTP %d)", a.StatusCode)
		}
	}
	return fmt.Sprintf("%s  %s  %s", a.Timestamp.Local().Format("Jan 02 15:04"), cfg.Summary(), result)
}

func attemptDetails(a store.GenerationEvent) []string {
	details := []string{
		fmt.Sprintf("Type: %s  Requested: %d  Latency: %dms",
			config.QuestionTypeDisplayName(config.QuestionType(a.QuestionType)), a.NumQuestions, a.LatencyMs),
		"Request: " + a.RequestID,
	}
	if a.ErrorMessage != "" {
		details = append(details, "Error: "+a.ErrorMessage)
	}
	return details
}
