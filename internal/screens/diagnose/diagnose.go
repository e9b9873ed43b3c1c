package diagnose

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/router"
	"github.com/kokeshes/wxk-check/internal/runs"
	"github.com/kokeshes/wxk-check/internal/screen"
	"github.com/kokeshes/wxk-check/internal/screens"
	"github.com/kokeshes/wxk-check/internal/screens/entry"
	"github.com/kokeshes/wxk-check/internal/ui/components"
	"github.com/kokeshes/wxk-check/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseIntro
	phaseQuestion
	phaseResult
)

// Result buttons.
const (
	buttonApply = iota
	buttonRestart
	buttonDone
)

// DiagnoseScreen runs one questionnaire and shows the ranked result.
type DiagnoseScreen struct {
	deps screens.Deps

	phase   phase
	ctx     diagnosis.SessionContext
	session *diagnosis.Session
	result  *diagnosis.Result

	// choice is the answer highlighted on the question view.
	choice     diagnosis.Answer
	confirming bool
	buttons    components.ButtonRow

	notice string
	errMsg string
}

var _ screen.Screen = (*DiagnoseScreen)(nil)
var _ screen.KeyHintProvider = (*DiagnoseScreen)(nil)

// New creates a DiagnoseScreen. deps.Engine must be set.
func New(deps screens.Deps) *DiagnoseScreen {
	return &DiagnoseScreen{
		deps:   deps,
		phase:  phaseLoading,
		ctx:    diagnosis.SessionContext{}.Normalize(),
		choice: diagnosis.AnswerYes,
	}
}

func (s *DiagnoseScreen) Init() tea.Cmd {
	return s.loadContext()
}

func (s *DiagnoseScreen) loadContext() tea.Cmd {
	drafts := s.deps.Drafts
	return func() tea.Msg {
		if drafts == nil {
			return contextLoadedMsg{Ctx: diagnosis.SessionContext{}.Normalize()}
		}
		ctx, err := drafts.Context(context.Background())
		return contextLoadedMsg{Ctx: ctx, Err: err}
	}
}

func (s *DiagnoseScreen) Title() string {
	return "Diagnose"
}

func (s *DiagnoseScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirming:
		return []layout.KeyHint{
			{Key: "y", Description: "Quit check"},
			{Key: "n", Description: "Continue"},
		}
	case s.phase == phaseQuestion:
		return []layout.KeyHint{
			{Key: "y/n", Description: "Answer"},
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.phase == phaseResult:
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
			{Key: "a", Description: "Apply"},
			{Key: "r", Description: "Restart"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *DiagnoseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contextLoadedMsg:
		if msg.Err != nil {
			s.deps.Log().Warn("read draft context", zap.Error(msg.Err))
			s.notice = "Could not read the draft; using defaults."
		} else {
			s.ctx = msg.Ctx
		}
		if s.phase == phaseLoading {
			s.phase = phaseIntro
		}
		return s, nil

	case runRecordedMsg:
		if msg.Err != nil {
			s.deps.Log().Warn("record diagnosis run", zap.Error(msg.Err))
			s.errMsg = "Run not saved: " + msg.Err.Error()
		}
		return s, nil

	case appliedMsg:
		if msg.Err != nil {
			s.errMsg = "Apply failed: " + msg.Err.Error()
			return s, nil
		}
		return s, router.Replace(entry.New(s.deps))

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *DiagnoseScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirming {
		switch key {
		case "y", "Y":
			return s, router.Pop()
		case "n", "N", "esc":
			s.confirming = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseLoading:
		if key == "esc" {
			return s, router.Pop()
		}

	case phaseIntro:
		switch key {
		case "esc":
			return s, router.Pop()
		case "enter", "space":
			return s.start()
		}

	case phaseQuestion:
		switch key {
		case "esc":
			s.confirming = true
		case "y", "Y":
			return s.answer(diagnosis.AnswerYes)
		case "n", "N":
			return s.answer(diagnosis.AnswerNo)
		case "left", "right", "h", "l", "tab":
			if s.choice == diagnosis.AnswerYes {
				s.choice = diagnosis.AnswerNo
			} else {
				s.choice = diagnosis.AnswerYes
			}
		case "enter":
			return s.answer(s.choice)
		}

	case phaseResult:
		switch key {
		case "esc":
			return s, router.Pop()
		case "left", "h", "shift+tab":
			s.buttons.Move(-1)
		case "right", "l", "tab":
			s.buttons.Move(1)
		case "a":
			return s, s.apply()
		case "r":
			return s.restart()
		case "enter":
			switch s.buttons.Focus {
			case buttonApply:
				return s, s.apply()
			case buttonRestart:
				return s.restart()
			case buttonDone:
				return s, router.Pop()
			}
		}
	}
	return s, nil
}

func (s *DiagnoseScreen) start() (screen.Screen, tea.Cmd) {
	s.session = s.deps.Engine.NewSession()
	if err := s.session.Start(); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.choice = diagnosis.AnswerYes
	s.errMsg = ""
	s.phase = phaseQuestion
	if s.session.State() == diagnosis.StateCompleted {
		return s.finish()
	}
	return s, nil
}

func (s *DiagnoseScreen) answer(a diagnosis.Answer) (screen.Screen, tea.Cmd) {
	if err := s.session.Answer(a); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.choice = diagnosis.AnswerYes
	if s.session.State() == diagnosis.StateCompleted {
		return s.finish()
	}
	return s, nil
}

func (s *DiagnoseScreen) finish() (screen.Screen, tea.Cmd) {
	res, err := s.session.Finish(s.ctx)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.result = res
	s.phase = phaseResult
	s.buttons = components.ButtonRow{
		Buttons: []components.Button{
			{Label: "Apply to log", Disabled: len(res.Apply) == 0},
			{Label: "Restart"},
			{Label: "Done"},
		},
	}
	if len(res.Apply) == 0 {
		s.buttons.Focus = buttonRestart
	}
	return s, s.record(res)
}

func (s *DiagnoseScreen) record(res *diagnosis.Result) tea.Cmd {
	repo := s.deps.Runs
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		run, err := runs.Record(context.Background(), repo, res)
		return runRecordedMsg{Run: run, Err: err}
	}
}

func (s *DiagnoseScreen) apply() tea.Cmd {
	if s.result == nil || len(s.result.Apply) == 0 {
		s.notice = "Nothing to apply."
		return nil
	}
	drafts := s.deps.Drafts
	if drafts == nil {
		s.notice = "No storage; nothing applied."
		return nil
	}
	codes := s.result.Apply
	return func() tea.Msg {
		_, err := drafts.ApplyCodes(context.Background(), codes)
		return appliedMsg{Err: err}
	}
}

func (s *DiagnoseScreen) restart() (screen.Screen, tea.Cmd) {
	s.session = nil
	s.result = nil
	s.notice = ""
	s.errMsg = ""
	s.phase = phaseIntro
	return s, s.loadContext()
}
