package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kokeshes/wxk-check/internal/router"
	"github.com/kokeshes/wxk-check/internal/screens"
	"github.com/kokeshes/wxk-check/internal/screens/history"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestHome_StatsWithoutStorage(t *testing.T) {
	h := New(screens.Deps{})
	msg := h.Init()()
	loaded, ok := msg.(statsLoadedMsg)
	if !ok {
		t.Fatalf("Init msg = %T, want statsLoadedMsg", msg)
	}
	if !loaded.stats.loaded || loaded.stats.entries != 0 || loaded.stats.err != "" {
		t.Errorf("stats = %+v", loaded.stats)
	}
	h.Update(loaded)
	if !h.stats.loaded {
		t.Error("stats not applied")
	}
}

func TestHome_MenuNavigation(t *testing.T) {
	h := New(screens.Deps{})

	h.Update(key(tea.KeyDown))
	h.Update(key(tea.KeyDown))
	if h.menu.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", h.menu.Selected)
	}

	_, cmd := h.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("enter on HISTORY returned no cmd")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("cmd msg is not a push")
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("pushed %T, want *history.HistoryScreen", push.Screen)
	}

	h.Update(key(tea.KeyDown))
	_, cmd = h.Update(key(tea.KeyEnter))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("QUIT did not quit")
	}
}

func TestHome_ViewCompact(t *testing.T) {
	h := New(screens.Deps{})
	h.Update(h.Init()())

	full := h.View(120, 40)
	if !strings.Contains(full, "DIAGNOSE") {
		t.Error("full view missing menu")
	}
	compact := h.View(80, 18)
	if !strings.Contains(compact, titleCompact) {
		t.Error("compact view missing compact title")
	}
	if !strings.Contains(compact, "▸ DIAGNOSE") {
		t.Error("compact view missing selected item")
	}
}
