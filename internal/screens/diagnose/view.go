package diagnose

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/ui/components"
	"github.com/kokeshes/wxk-check/internal/ui/theme"
)

func (s *DiagnoseScreen) View(width, height int) string {
	var body string
	switch s.phase {
	case phaseLoading:
		body = lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading...")
	case phaseIntro:
		body = s.renderIntro(width)
	case phaseQuestion:
		body = s.renderQuestion(width)
	case phaseResult:
		body = s.renderResult(width)
	}

	var footer []string
	if s.confirming {
		footer = append(footer, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render("Quit this check? Answers so far are discarded. (y/n)"))
	}
	if s.notice != "" {
		footer = append(footer, lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.notice))
	}
	if s.errMsg != "" {
		footer = append(footer, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	if len(footer) == 0 {
		return body
	}
	return body + "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(footer, "\n"))
}

func (s *DiagnoseScreen) contextLine() string {
	return fmt.Sprintf("Profile: %s · Load %d/%d", s.ctx.Profile.Label(), s.ctx.LoadLevel, diagnosis.MaxLoad)
}

func (s *DiagnoseScreen) renderIntro(width int) string {
	cw := components.ContentWidth(width)
	n := s.deps.Engine.Bank().Len()

	lines := []string{
		theme.Title.Render("Self check"),
		"",
		theme.Body.Render(fmt.Sprintf("%d yes/no questions, one at a time.", n)),
		theme.Body.Render("Answer by feel. There is no going back."),
		"",
		theme.Subtitle.Render(s.contextLine()),
		theme.Hint.Render("Profile and load come from the log form."),
		"",
		theme.ButtonActive.Render("▸ Press Enter to start"),
	}
	return "\n" + components.Center(components.Card(strings.Join(lines, "\n"), cw), width)
}

func (s *DiagnoseScreen) renderQuestion(width int) string {
	q, err := s.session.Current()
	if err != nil {
		return ""
	}
	cw := components.ContentWidth(width)
	idx, total := s.session.Index(), s.session.Len()

	var b strings.Builder
	bar := components.NewProgressBar(fmt.Sprintf("Q %d/%d", idx+1, total), float64(idx)/float64(max(total, 1)), false, cw)
	b.WriteString(components.Center(bar.View(), width))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt)
	b.WriteString(components.Center(prompt, width))
	b.WriteString("\n\n")

	yes := components.Button{Label: "YES (y)"}
	no := components.Button{Label: "NO (n)"}
	row := lipgloss.JoinHorizontal(lipgloss.Center,
		yes.View(s.choice == diagnosis.AnswerYes),
		"   ",
		no.View(s.choice == diagnosis.AnswerNo),
	)
	b.WriteString(components.Center(row, width))
	return b.String()
}

func (s *DiagnoseScreen) renderResult(width int) string {
	res := s.result
	cw := components.ContentWidth(width)

	var b strings.Builder
	if res.Critical {
		banner := components.AlertCard(
			lipgloss.NewStyle().Foreground(theme.SevCritical).Bold(true).Render("⚠ Critical detected")+"\n"+
				theme.Body.Render("Start with #1's quick action. Step back, then reset scope or deadline if needed."), cw)
		b.WriteString(components.Center(banner, width))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("No critical codes. Work down from #1.")))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render(fmt.Sprintf("Top %d · %s", len(res.Ranked), s.contextLine()))))
	b.WriteString("\n\n")

	var rows []string
	for i, e := range res.Ranked {
		rows = append(rows, renderEntry(i+1, e, cw))
	}
	b.WriteString(components.Center(strings.Join(rows, "\n"), width))
	b.WriteString("\n\n")
	b.WriteString(components.Center(s.buttons.View(), width))
	return b.String()
}

// renderEntry renders one ranked row as a heading and its quick action.
func renderEntry(rank int, e diagnosis.RankedEntry, cw int) string {
	sevStyle := lipgloss.NewStyle().Foreground(theme.SeverityColor(string(e.Severity))).Bold(true)

	var head string
	if e.IsMonitor() {
		head = fmt.Sprintf("#%d %s (%s)", rank, e.Code, e.Name)
	} else {
		head = fmt.Sprintf("#%d %s %s", rank, e.Code, e.Name)
	}
	meta := theme.Hint.Render(fmt.Sprintf("  %s · score %d", e.Severity, e.Score))
	quick := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render("   Quick: " + e.QuickAction)
	return sevStyle.Render(head) + meta + "\n" + quick
}
