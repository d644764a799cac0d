// Package generator implements the main screen: the settings form, the
// Generate button and the list of generated questions.
package generator

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/generation"
	"github.com/abhisek/mathgen/internal/router"
	"github.com/abhisek/mathgen/internal/screen"
	"github.com/abhisek/mathgen/internal/ui/components"
	"github.com/abhisek/mathgen/internal/ui/layout"
	"github.com/abhisek/mathgen/internal/ui/theme"
)

type focusArea int

const (
	focusSettings focusArea = iota
	focusQuestions
)

// GeneratorScreen lets the user pick settings, request a batch and reveal
// answers one question at a time.
type GeneratorScreen struct {
	ctrl    *generation.Controller
	cfg     config.Config
	fields  components.FieldList
	button  components.Button
	spinner spinner.Model
	toast   components.Toast

	// setCfg is the config of the request that produced the current set.
	setCfg config.Config
	hasSet bool

	focus   focusArea
	cursor  int
	history func() screen.Screen
}

var _ screen.Screen = (*GeneratorScreen)(nil)
var _ screen.KeyHintProvider = (*GeneratorScreen)(nil)
var _ screen.StatusProvider = (*GeneratorScreen)(nil)
var _ screen.Closer = (*GeneratorScreen)(nil)
var _ screen.Resumer = (*GeneratorScreen)(nil)

// Option configures a GeneratorScreen.
type Option func(*GeneratorScreen)

// WithHistory enables the history shortcut. factory builds a fresh
// history screen on each press.
func WithHistory(factory func() screen.Screen) Option {
	return func(s *GeneratorScreen) { s.history = factory }
}

// New creates the screen around ctrl, starting from cfg.
func New(ctrl *generation.Controller, cfg config.Config, opts ...Option) *GeneratorScreen {
	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary)),
	)
	s := &GeneratorScreen{ctrl: ctrl, cfg: cfg, spinner: sp}
	s.button = components.NewButton("Generate Questions", "Generating...", s.generate)
	s.fields = components.NewFieldList(s.fieldRows())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *GeneratorScreen) Init() tea.Cmd {
	return nil
}

func (s *GeneratorScreen) Title() string {
	return "Question Generator"
}

// HeaderStatus summarises the displayed set, e.g.
// "Year 3 • medium difficulty • arithmetic".
func (s *GeneratorScreen) HeaderStatus() string {
	if !s.hasSet {
		return ""
	}
	return s.setCfg.Summary()
}

func (s *GeneratorScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Switch"}}
	if s.focus == focusSettings {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Field"},
			layout.KeyHint{Key: "←→", Description: "Change"},
			layout.KeyHint{Key: "Enter", Description: "Generate"},
		)
	} else {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Question"},
			layout.KeyHint{Key: "Space", Description: "Show/Hide"},
			layout.KeyHint{Key: "g", Description: "Generate"},
		)
	}
	if s.history != nil {
		hints = append(hints, layout.KeyHint{Key: "h", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Config returns the settings as currently edited.
func (s *GeneratorScreen) Config() config.Config {
	return s.cfg
}

// Close tears down the controller so late results are discarded.
func (s *GeneratorScreen) Close() {
	s.ctrl.Close()
}

// Resume restarts the spinner when a request is still in flight. Ticks
// delivered while another screen was on top are lost.
func (s *GeneratorScreen) Resume() tea.Cmd {
	if s.ctrl.Status() != generation.StatusLoading {
		return nil
	}
	return s.spinner.Tick
}

func (s *GeneratorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generationDoneMsg:
		return s, s.applyResult(msg.Result)

	case toastExpiredMsg:
		if s.toast.Dismiss(msg.Seq) {
			s.ctrl.DismissNotice()
		}
		return s, nil

	case spinner.TickMsg:
		if s.ctrl.Status() != generation.StatusLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *GeneratorScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab":
		s.toggleFocus()
		return nil
	case "g":
		return s.generate()
	case "h":
		if s.history != nil {
			next := s.history()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
		return nil
	case "esc":
		if s.toast.Visible() {
			s.toast.Dismiss(s.toast.Seq)
			s.ctrl.DismissNotice()
		}
		return nil
	}

	if s.focus == focusQuestions {
		return s.handleQuestionKey(msg)
	}
	return s.handleSettingsKey(msg)
}

func (s *GeneratorScreen) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left":
		s.cycle(-1)
		return nil
	case "right":
		s.cycle(1)
		return nil
	case "enter":
		var cmd tea.Cmd
		s.button, cmd = s.button.Update(msg)
		return cmd
	}
	s.fields, _ = s.fields.Update(msg)
	return nil
}

func (s *GeneratorScreen) handleQuestionKey(msg tea.KeyMsg) tea.Cmd {
	n := s.ctrl.Len()
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < n-1 {
			s.cursor++
		}
	case "space", " ", "enter":
		if n > 0 {
			_ = s.ctrl.ToggleReveal(s.cursor)
		}
	}
	return nil
}

// cycle moves the focused field delta steps through its choices. Updates
// that fail coercion leave the config unchanged.
func (s *GeneratorScreen) cycle(delta int) {
	fields := config.AllFields()
	f := fields[s.fields.Selected]
	next, err := s.cfg.Cycle(f, delta)
	if err != nil {
		return
	}
	s.cfg = next
	s.fields.Rows = s.fieldRows()
}

func (s *GeneratorScreen) toggleFocus() {
	if s.focus == focusSettings && s.ctrl.Len() > 0 {
		s.focus = focusQuestions
		return
	}
	s.focus = focusSettings
}

// generate starts a request with a snapshot of the current settings. It
// does nothing while a request is in flight.
func (s *GeneratorScreen) generate() tea.Cmd {
	ticket, ok := s.ctrl.Begin(s.cfg)
	if !ok {
		return nil
	}
	s.button.Busy = true
	ctrl := s.ctrl
	fetch := func() tea.Msg {
		return generationDoneMsg{Result: ctrl.Fetch(context.Background(), ticket)}
	}
	return tea.Batch(fetch, s.spinner.Tick)
}

func (s *GeneratorScreen) applyResult(r generation.Result) tea.Cmd {
	outcome, err := s.ctrl.Apply(r)
	if errors.Is(err, generation.ErrStale) {
		return nil
	}
	s.button.Busy = false

	if !outcome.Success() {
		seq := s.toast.Show(outcome.Notice)
		return tea.Tick(components.ToastDuration, func(time.Time) tea.Msg {
			return toastExpiredMsg{Seq: seq}
		})
	}

	s.setCfg = outcome.Ticket.Config
	s.hasSet = true
	s.cursor = 0
	if s.ctrl.Len() > 0 {
		s.focus = focusQuestions
	} else {
		s.focus = focusSettings
	}
	return nil
}

func (s *GeneratorScreen) fieldRows() []components.FieldRow {
	fields := config.AllFields()
	rows := make([]components.FieldRow, len(fields))
	for i, f := range fields {
		rows[i] = components.FieldRow{Label: config.FieldLabel(f), Value: s.cfg.Label(f)}
		if f == config.FieldYearLevel {
			rows[i].Hint = config.YearDescription(s.cfg.YearLevel)
		}
	}
	return rows
}
