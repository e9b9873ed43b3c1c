package components

import (
	"fmt"

	"github.com/kokeshes/wxk-check/internal/ui/theme"
)

// Slider is an integer range input adjusted with left/right.
type Slider struct {
	Min, Max int
	Value    int
	Width    int
}

// NewSlider creates a slider with value clamped to [lo, hi].
func NewSlider(lo, hi, value, width int) Slider {
	return Slider{Min: lo, Max: hi, Value: min(max(value, lo), hi), Width: width}
}

// HandleKey adjusts the value and reports whether it changed.
func (s *Slider) HandleKey(key string) bool {
	prev := s.Value
	switch key {
	case "left", "h", "-":
		s.Value--
	case "right", "l", "+":
		s.Value++
	case "home":
		s.Value = s.Min
	case "end":
		s.Value = s.Max
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			s.Value = int(key[0] - '0')
		}
	}
	s.Value = min(max(s.Value, s.Min), s.Max)
	return s.Value != prev
}

// View renders the bar followed by the numeric value.
func (s Slider) View(focused bool) string {
	span := s.Max - s.Min
	pct := 0.0
	if span > 0 {
		pct = float64(s.Value-s.Min) / float64(span)
	}
	bar := ProgressBar{Percent: pct, Width: s.Width}
	switch {
	case s.Value >= 8:
		bar.Color = theme.SevCritical
	case s.Value >= 6:
		bar.Color = theme.SevHigh
	}
	val := fmt.Sprintf(" %2d", s.Value)
	if focused {
		val = theme.Focused.Render(val)
	}
	return bar.View() + val
}
