package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/kokeshes/wxk-check/internal/router"
	"github.com/kokeshes/wxk-check/internal/screen"
	"github.com/kokeshes/wxk-check/internal/screens"
	"github.com/kokeshes/wxk-check/internal/screens/home"
	"github.com/kokeshes/wxk-check/internal/ui/layout"
)

// Options configures the interactive app.
type Options struct {
	Deps screens.Deps
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
	now    func() time.Time
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(opts.Deps)),
		now:    time.Now,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Screens handle esc themselves so they can save or confirm first.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	now := m.now()
	status := fmt.Sprintf("%d/%d/%d  ", now.Year(), int(now.Month()), now.Day())
	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	logger := opts.Deps.Log()
	p := tea.NewProgram(newAppModel(opts))
	logger.Debug("starting interactive app")
	_, err := p.Run()
	if err != nil {
		logger.Error("program exited", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
