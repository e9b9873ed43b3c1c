package entry

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kokeshes/wxk-check/internal/ui/components"
	"github.com/kokeshes/wxk-check/internal/ui/layout"
	"github.com/kokeshes/wxk-check/internal/ui/theme"
)

func (s *EntryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next field"}}
	switch s.focus {
	case fieldProfile, fieldBoundary:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Change"})
	case fieldLoad:
		hints = append(hints, layout.KeyHint{Key: "←→ 0-9", Description: "Adjust"})
	case fieldCodes:
		hints = append(hints,
			layout.KeyHint{Key: "Arrows", Description: "Move"},
			layout.KeyHint{Key: "Space", Description: "Toggle"})
	case fieldActions:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	case fieldSave:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Save"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+S", Description: "Save"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *EntryScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading draft...")
	}

	cw := components.ContentWidth(width)
	var rows []string
	row := func(f field, label, value string) {
		l := theme.Label
		if s.focus == f {
			l = l.Foreground(theme.Accent).Bold(true)
		}
		rows = append(rows, l.Render(label)+value)
	}

	row(fieldProfile, "Profile", s.profile.View(s.focus == fieldProfile))
	row(fieldLoad, "Load", s.load.View(s.focus == fieldLoad))
	row(fieldCodes, "Codes", s.codeSummary())
	if s.focus == fieldCodes {
		rows = append(rows, s.chips.View(cw, true, s.selection.Has))
	}
	row(fieldActions, "Actions", s.actions.View(s.focus == fieldActions))
	row(fieldBoundary, "Boundary", s.boundary.ViewValue(s.focus == fieldBoundary))
	row(fieldBoundaryNote, "Boundary note", s.boundaryNote.View())
	row(fieldNote, "Note", s.note.View())
	rows = append(rows, "")
	rows = append(rows, components.Button{Label: "Save log"}.View(s.focus == fieldSave))

	switch {
	case s.errMsg != "":
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	case s.status != "":
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(s.status))
	}

	form := lipgloss.NewStyle().Width(cw).Render(strings.Join(rows, "\n"))
	return "\n" + components.Center(form, width)
}

// codeSummary lists the selected codes inline.
func (s *EntryScreen) codeSummary() string {
	codes := s.selection.Codes()
	if len(codes) == 0 {
		return theme.Hint.Render("none selected")
	}
	return theme.Selected.Render(strings.Join(codes, ", ")) +
		theme.Hint.Render(fmt.Sprintf("  (%d)", len(codes)))
}
