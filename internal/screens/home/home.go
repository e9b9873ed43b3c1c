package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/kokeshes/wxk-check/internal/router"
	"github.com/kokeshes/wxk-check/internal/screen"
	"github.com/kokeshes/wxk-check/internal/screens"
	"github.com/kokeshes/wxk-check/internal/screens/diagnose"
	"github.com/kokeshes/wxk-check/internal/screens/entry"
	"github.com/kokeshes/wxk-check/internal/screens/history"
	"github.com/kokeshes/wxk-check/internal/store"
	"github.com/kokeshes/wxk-check/internal/ui/components"
	"github.com/kokeshes/wxk-check/internal/ui/layout"
)

type stats struct {
	loaded  bool
	entries int
	lastRun *store.Run
	draft   store.DraftData
	err     string
}

type statsLoadedMsg struct {
	stats stats
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps       screens.Deps
	menu       components.Menu
	menuLabels []string
	stats      stats
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

// New creates a HomeScreen.
func New(deps screens.Deps) *HomeScreen {
	menuLabels := []string{"DIAGNOSE", "NEW LOG", "HISTORY", "QUIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return router.Push(diagnose.New(deps))
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return router.Push(entry.New(deps))
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return router.Push(history.New(deps))
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads the dashboard after a pushed screen is closed.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		ctx := context.Background()
		st := stats{loaded: true}
		var errs []string

		if deps.Entries != nil {
			n, err := deps.Entries.Count(ctx)
			if err != nil {
				errs = append(errs, "logs: "+err.Error())
			}
			st.entries = n
		}
		if deps.Runs != nil {
			runs, err := deps.Runs.QueryRuns(ctx, store.QueryOpts{Limit: 1})
			if err != nil {
				errs = append(errs, "runs: "+err.Error())
			} else if len(runs) > 0 {
				st.lastRun = &runs[0]
			}
		}
		if deps.Drafts != nil {
			d, err := deps.Drafts.Load(ctx)
			if err != nil {
				errs = append(errs, "draft: "+err.Error())
			}
			st.draft = d
		}
		if len(errs) > 0 {
			deps.Log().Warn("home stats", zap.Strings("errors", errs))
			st.err = fmt.Sprintf("could not read %s", strings.Join(errs, "; "))
		}
		return statsLoadedMsg{stats: st}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsLoadedMsg); ok {
		h.stats = m.stats
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactWidth(width) || layout.IsCompactHeight(height)
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStats(h.stats, cw))
	if compact {
		sections = append(sections, renderMenuCompact(h.menu, cw))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
