package generator

import (
	"context"
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathgen/internal/backend"
	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/generation"
	"github.com/abhisek/mathgen/internal/questions"
	"github.com/abhisek/mathgen/internal/router"
	"github.com/abhisek/mathgen/internal/screen"
)

type stubFetcher struct {
	qs    []questions.Question
	err   error
	calls []config.Config
}

func (f *stubFetcher) Generate(_ context.Context, cfg config.Config) ([]questions.Question, error) {
	f.calls = append(f.calls, cfg)
	return f.qs, f.err
}

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "history" }
func (s *stubScreen) Title() string                          { return "History" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func sampleQuestions() []questions.Question {
	return []questions.Question{
		{
			Text:          "What is 6 × 7?",
			Options:       []string{"A) 36", "B) 42", "C) 48", "D) 49"},
			CorrectAnswer: "B",
			Explanation:   "6 groups of 7 make 42.",
		},
		{Text: "What is 81 ÷ 9?", CorrectAnswer: "9"},
	}
}

func newTestScreen(f *stubFetcher) *GeneratorScreen {
	return New(generation.New(f), config.Default())
}

// runGeneration executes the batch returned by a generate key press and
// feeds the fetch result back into the screen.
func runGeneration(t *testing.T, s *GeneratorScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msgs := []tea.Msg{cmd()}
	if batch, ok := msgs[0].(tea.BatchMsg); ok {
		msgs = msgs[:0]
		for _, c := range batch {
			if c != nil {
				msgs = append(msgs, c())
			}
		}
	}
	for _, msg := range msgs {
		if done, ok := msg.(generationDoneMsg); ok {
			_, next := s.Update(done)
			return next
		}
	}
	t.Fatalf("no generation result in %v", msgs)
	return nil
}

func TestInitialViewShowsPlaceholder(t *testing.T) {
	s := newTestScreen(&stubFetcher{})

	view := s.View(100, 40)
	if !strings.Contains(view, "Ready to Generate Questions!") {
		t.Errorf("expected placeholder, got:\n%s", view)
	}
	if !strings.Contains(view, "Multiplication tables and division") {
		t.Error("expected year description for the default year")
	}
	if s.HeaderStatus() != "" {
		t.Errorf("expected empty header status, got %q", s.HeaderStatus())
	}
}

func TestArrowKeysCycleFocusedField(t *testing.T) {
	s := newTestScreen(&stubFetcher{})

	s.Update(specialKey(tea.KeyRight))
	if s.Config().YearLevel != 4 {
		t.Fatalf("expected year 4, got %d", s.Config().YearLevel)
	}

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyLeft))
	if s.Config().Difficulty != config.DifficultyEasy {
		t.Errorf("expected easy, got %s", s.Config().Difficulty)
	}
	if s.Config().YearLevel != 4 {
		t.Error("changing difficulty must not touch the year")
	}
}

func TestGenerateShowsQuestions(t *testing.T) {
	f := &stubFetcher{qs: sampleQuestions()}
	s := newTestScreen(f)
	s.Update(specialKey(tea.KeyRight))

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if s.ctrl.Status() != generation.StatusLoading {
		t.Fatalf("expected loading, got %s", s.ctrl.Status())
	}
	if view := s.View(100, 40); !strings.Contains(view, "Generating") {
		t.Errorf("expected busy button while loading:\n%s", view)
	}

	runGeneration(t, s, cmd)

	if len(f.calls) != 1 || f.calls[0].YearLevel != 4 {
		t.Fatalf("unexpected fetch calls: %+v", f.calls)
	}
	if s.ctrl.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", s.ctrl.Len())
	}
	if got, want := s.HeaderStatus(), "Year 4 • medium difficulty • arithmetic"; got != want {
		t.Errorf("header status = %q, want %q", got, want)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "What is 6 × 7?") || !strings.Contains(view, "B) 42") {
		t.Errorf("expected question list:\n%s", view)
	}
	if strings.Contains(view, "Ready to Generate Questions!") {
		t.Error("placeholder should be hidden once questions exist")
	}
}

func TestSpaceTogglesOnlyFocusedQuestion(t *testing.T) {
	s := newTestScreen(&stubFetcher{qs: sampleQuestions()})
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	runGeneration(t, s, cmd)

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeySpace))

	items := s.ctrl.Questions()
	if items[0].Revealed || !items[1].Revealed {
		t.Fatalf("expected only question 2 revealed: %+v", items)
	}
	if !strings.Contains(s.View(100, 40), "Answer: 9") {
		t.Error("expected revealed answer in view")
	}

	s.Update(specialKey(tea.KeySpace))
	if s.ctrl.RevealedCount() != 0 {
		t.Error("second toggle should hide the answer again")
	}
}

func TestFailureShowsToastAndKeepsSet(t *testing.T) {
	f := &stubFetcher{qs: sampleQuestions()}
	s := newTestScreen(f)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	runGeneration(t, s, cmd)
	s.Update(specialKey(tea.KeySpace))
	before := s.ctrl.Questions()

	f.qs = nil
	f.err = &backend.RequestError{Kind: backend.KindStatus, StatusCode: 500}
	_, cmd = s.Update(keyPress('g'))
	dismiss := runGeneration(t, s, cmd)

	if !s.toast.Visible() {
		t.Fatal("expected a toast after failure")
	}
	if !strings.Contains(s.View(100, 40), "HTTP 500") {
		t.Error("expected status code in toast")
	}
	after := s.ctrl.Questions()
	if len(after) != len(before) || after[0].Revealed != before[0].Revealed {
		t.Fatal("failed request must leave the question set untouched")
	}

	if dismiss == nil {
		t.Fatal("expected an auto-dismiss timer")
	}
	s.Update(toastExpiredMsg{Seq: s.toast.Seq})
	if s.toast.Visible() || s.ctrl.Notice() != "" {
		t.Error("toast should be dismissed when its timer fires")
	}
}

func TestStaleToastTimerIgnored(t *testing.T) {
	f := &stubFetcher{err: &backend.RequestError{Kind: backend.KindTransport}}
	s := newTestScreen(f)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	runGeneration(t, s, cmd)
	first := s.toast.Seq
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	runGeneration(t, s, cmd)

	s.Update(toastExpiredMsg{Seq: first})
	if !s.toast.Visible() {
		t.Error("timer of an older toast must not hide the newer one")
	}
}

func TestGenerateIgnoredWhileLoading(t *testing.T) {
	f := &stubFetcher{qs: sampleQuestions()}
	s := newTestScreen(f)

	_, first := s.Update(specialKey(tea.KeyEnter))
	_, second := s.Update(keyPress('g'))
	if second != nil {
		t.Error("second generate while loading should be a no-op")
	}
	runGeneration(t, s, first)
	if len(f.calls) != 1 {
		t.Errorf("expected one request, got %d", len(f.calls))
	}
}

func TestResultAfterCloseDiscarded(t *testing.T) {
	s := newTestScreen(&stubFetcher{qs: sampleQuestions()})
	_, cmd := s.Update(specialKey(tea.KeyEnter))

	s.Close()
	runGeneration(t, s, cmd)

	if s.ctrl.Len() != 0 || s.toast.Visible() {
		t.Error("result delivered after close must be dropped")
	}
}

func TestHistoryKeyPushesScreen(t *testing.T) {
	s := New(generation.New(&stubFetcher{}), config.Default(),
		WithHistory(func() screen.Screen { return &stubScreen{} }))

	_, cmd := s.Update(keyPress('h'))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "History" {
		t.Fatalf("expected PushScreenMsg for history, got %#v", push)
	}
}

func TestHistoryKeyWithoutStore(t *testing.T) {
	s := newTestScreen(&stubFetcher{})
	if _, cmd := s.Update(keyPress('h')); cmd != nil {
		t.Error("history key should do nothing without a history screen")
	}
}

func TestResumeRestartsSpinnerOnlyWhileLoading(t *testing.T) {
	s := newTestScreen(&stubFetcher{qs: sampleQuestions()})
	if s.Resume() != nil {
		t.Error("idle screen should not restart the spinner")
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	resume := s.Resume()
	if resume == nil {
		t.Fatal("expected a spinner tick while loading")
	}
	if _, ok := resume().(spinner.TickMsg); !ok {
		t.Error("resume should emit a spinner tick")
	}

	runGeneration(t, s, cmd)
	if s.Resume() != nil {
		t.Error("spinner should stay stopped once the result is applied")
	}
}
