package components

import (
	"strings"

	"github.com/kokeshes/wxk-check/internal/ui/theme"
)

// Choice is a single-select option cycled with left/right.
type Choice struct {
	Options  []string
	Selected int
}

// NewChoice creates a choice with the option equal to current selected,
// or the first option when current is not present.
func NewChoice(options []string, current string) Choice {
	c := Choice{Options: options}
	for i, o := range options {
		if o == current {
			c.Selected = i
			break
		}
	}
	return c
}

// HandleKey moves the selection for left/right keys and reports whether
// it changed.
func (c *Choice) HandleKey(key string) bool {
	n := len(c.Options)
	if n == 0 {
		return false
	}
	switch key {
	case "left", "h":
		c.Selected = (c.Selected - 1 + n) % n
		return true
	case "right", "l", "space":
		c.Selected = (c.Selected + 1) % n
		return true
	}
	return false
}

// Value returns the selected option, or "" when there are none.
func (c Choice) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected]
}

// View renders the options inline with the selected one highlighted.
func (c Choice) View(focused bool) string {
	parts := make([]string, len(c.Options))
	for i, o := range c.Options {
		switch {
		case i == c.Selected && focused:
			parts[i] = theme.Focused.Render("‹" + o + "›")
		case i == c.Selected:
			parts[i] = theme.Selected.Render(o)
		default:
			parts[i] = theme.Hint.Render(o)
		}
	}
	return strings.Join(parts, " ")
}

// ViewValue renders only the selected option, for long option lists.
func (c Choice) ViewValue(focused bool) string {
	v := c.Value()
	if v == "" {
		v = "(none)"
	}
	if focused {
		return theme.Focused.Render("‹ " + v + " ›")
	}
	return theme.Selected.Render(v)
}
