package components

import (
	"github.com/kokeshes/wxk-check/internal/ui/theme"
)

// Button is a styled button component.
type Button struct {
	Label    string
	Disabled bool
}

// View renders the button, highlighted when focused.
func (b Button) View(focused bool) string {
	switch {
	case b.Disabled:
		return theme.ButtonInactive.Foreground(theme.TextDim).Render(b.Label)
	case focused:
		return theme.ButtonActive.Render("▸ " + b.Label)
	default:
		return theme.ButtonInactive.Render(b.Label)
	}
}

// ButtonRow is a horizontal group of buttons with one focused.
type ButtonRow struct {
	Buttons []Button
	Focus   int
}

// Move shifts focus by delta, skipping disabled buttons.
func (r *ButtonRow) Move(delta int) {
	n := len(r.Buttons)
	for i := 1; i <= n; i++ {
		next := r.Focus + delta*i
		if next < 0 || next >= n {
			return
		}
		if !r.Buttons[next].Disabled {
			r.Focus = next
			return
		}
	}
}

// View renders the row.
func (r ButtonRow) View() string {
	var out string
	for i, b := range r.Buttons {
		if i > 0 {
			out += "  "
		}
		out += b.View(i == r.Focus)
	}
	return out
}
