package components

import (
	"strings"

	"github.com/kokeshes/wxk-check/internal/ui/theme"
)

// Checklist is a horizontal row of checkboxes with a cursor.
type Checklist struct {
	Labels  []string
	Checked []bool
	Cursor  int
}

// NewChecklist creates an unchecked list.
func NewChecklist(labels ...string) Checklist {
	return Checklist{Labels: labels, Checked: make([]bool, len(labels))}
}

// HandleKey moves the cursor or toggles the current box, and reports
// whether any box changed.
func (c *Checklist) HandleKey(key string) bool {
	switch key {
	case "left", "h":
		c.Cursor = max(c.Cursor-1, 0)
	case "right", "l":
		c.Cursor = min(c.Cursor+1, len(c.Labels)-1)
	case "space", "x":
		if c.Cursor < len(c.Checked) {
			c.Checked[c.Cursor] = !c.Checked[c.Cursor]
			return true
		}
	}
	return false
}

// View renders the boxes inline.
func (c Checklist) View(focused bool) string {
	parts := make([]string, len(c.Labels))
	for i, l := range c.Labels {
		box := "[ ] "
		if c.Checked[i] {
			box = "[x] "
		}
		style := theme.Unselected
		if focused && i == c.Cursor {
			style = theme.Focused
		} else if c.Checked[i] {
			style = theme.Selected
		}
		parts[i] = style.Render(box + l)
	}
	return strings.Join(parts, "  ")
}
