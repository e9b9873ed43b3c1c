package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"charm.land/lipgloss/v2"

	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/router"
	"github.com/kokeshes/wxk-check/internal/screen"
	"github.com/kokeshes/wxk-check/internal/screens"
	"github.com/kokeshes/wxk-check/internal/store"
	"github.com/kokeshes/wxk-check/internal/ui/layout"
	"github.com/kokeshes/wxk-check/internal/ui/theme"
)

// listLimit caps how many entries the screen loads.
const listLimit = 100

type historyLoadedMsg struct {
	Entries []store.Entry
	Err     error
}

type entryDeletedMsg struct {
	ID  string
	Err error
}

// HistoryScreen lists saved log entries.
type HistoryScreen struct {
	deps       screens.Deps
	entries    []store.Entry
	selected   int
	expanded   map[string]bool
	confirming bool
	loaded     bool
	errMsg     string
	status     string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps screens.Deps) *HistoryScreen {
	return &HistoryScreen{
		deps:     deps,
		expanded: make(map[string]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) load() tea.Cmd {
	repo := s.deps.Entries
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		entries, err := repo.List(context.Background(), store.QueryOpts{Limit: listLimit})
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *HistoryScreen) remove(id string) tea.Cmd {
	repo := s.deps.Entries
	logger := s.deps.Log()
	return func() tea.Msg {
		err := repo.Delete(context.Background(), id)
		if err != nil {
			logger.Warn("delete entry", zap.String("id", id), zap.Error(err))
		}
		return entryDeletedMsg{ID: id, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "y", Description: "Delete"},
			{Key: "n", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "d", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) current() *store.Entry {
	if s.selected < 0 || s.selected >= len(s.entries) {
		return nil
	}
	return &s.entries[s.selected]
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.entries = msg.Entries
			s.selected = min(s.selected, max(len(s.entries)-1, 0))
		}
		s.loaded = true
		return s, nil

	case entryDeletedMsg:
		if msg.Err != nil {
			s.status = "Delete failed: " + msg.Err.Error()
			return s, nil
		}
		delete(s.expanded, msg.ID)
		s.status = "Deleted."
		return s, s.load()

	case tea.KeyMsg:
		key := msg.String()
		if s.confirming {
			s.confirming = false
			if key == "y" {
				if e := s.current(); e != nil {
					return s, s.remove(e.ID)
				}
			}
			s.status = ""
			return s, nil
		}
		switch key {
		case "esc":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			if e := s.current(); e != nil {
				s.expanded[e.ID] = !s.expanded[e.ID]
			}
		case "d", "delete":
			if s.current() != nil && s.deps.Entries != nil {
				s.confirming = true
				s.status = "Delete this entry? (y/n)"
			}
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
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No logs yet.")
	}

	var lines []string
	for i := range s.entries {
		e := &s.entries[i]
		lines = append(lines, s.renderLine(e, i == s.selected))
		if s.expanded[e.ID] {
			lines = append(lines, s.renderDetails(e)...)
		}
	}

	// Keep the selected row on screen; expanded rows above it count too.
	visible := max(height-2, 1)
	selectedLine := 0
	for i := 0; i < s.selected; i++ {
		selectedLine++
		if s.expanded[s.entries[i].ID] {
			selectedLine += len(s.renderDetails(&s.entries[i]))
		}
	}
	first := max(selectedLine-visible+1, 0)
	last := min(first+visible, len(lines))

	var b strings.Builder
	b.WriteString("\n")
	for _, l := range lines[first:last] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Left, l))
		b.WriteString("\n")
	}
	if s.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("  " + s.status))
	}
	return b.String()
}

func (s *HistoryScreen) renderLine(e *store.Entry, selected bool) string {
	codes := "-"
	if len(e.Codes) > 0 {
		codes = strings.Join(e.Codes, ", ")
	}
	prefix := "  "
	if selected {
		prefix = "> "
	}
	line := fmt.Sprintf("%s%s  %s  load %d  %s",
		prefix, store.FormatListTime(e.Timestamp), diagnosis.Profile(e.Profile).Label(), e.Overload, codes)

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return style.Render(line)
}

func (s *HistoryScreen) renderDetails(e *store.Entry) []string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var out []string
	if s.deps.Engine != nil {
		cat := s.deps.Engine.Catalog()
		for _, code := range e.Codes {
			c := cat.Lookup(code)
			out = append(out, lipgloss.NewStyle().
				Foreground(theme.SeverityColor(string(c.Severity))).
				Render(fmt.Sprintf("      %s %s (%s)", code, c.Name, c.Severity)))
		}
	}
	if e.Note != "" {
		out = append(out, dim.Render("      note: "+e.Note))
	}
	if b := e.Boundary(); b != "" {
		out = append(out, dim.Render("      boundary: "+b))
	}
	if e.Actions.Any() {
		out = append(out, dim.Render("      actions: "+strings.Join(e.Actions.Labels(), ", ")))
	}
	if len(out) == 0 {
		out = append(out, dim.Italic(true).Render("      nothing else recorded"))
	}
	return out
}
