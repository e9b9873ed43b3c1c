package entry

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kokeshes/wxk-check/internal/catalog"
	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/draft"
	"github.com/kokeshes/wxk-check/internal/questionbank"
	"github.com/kokeshes/wxk-check/internal/router"
	"github.com/kokeshes/wxk-check/internal/screens"
	"github.com/kokeshes/wxk-check/internal/store"
)

// mockEntryRepo implements store.EntryRepo for testing.
type mockEntryRepo struct {
	entries []*store.Entry
	err     error
}

func (m *mockEntryRepo) Append(_ context.Context, e *store.Entry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}
func (m *mockEntryRepo) List(_ context.Context, _ store.QueryOpts) ([]store.Entry, error) {
	return nil, nil
}
func (m *mockEntryRepo) Get(_ context.Context, _ string) (*store.Entry, error) {
	return nil, store.ErrNotFound
}
func (m *mockEntryRepo) Delete(_ context.Context, _ string) error {
	return store.ErrNotFound
}
func (m *mockEntryRepo) ReplaceAll(_ context.Context, _ []store.Entry) error {
	return nil
}
func (m *mockEntryRepo) Wipe(_ context.Context) (int64, error) {
	return 0, nil
}
func (m *mockEntryRepo) Count(_ context.Context) (int, error) {
	return len(m.entries), nil
}

func testEngine(t *testing.T) *diagnosis.Engine {
	t.Helper()
	cat, err := catalog.New([]catalog.Condition{
		{Code: "A", Name: "alpha", Severity: catalog.SeverityHigh},
		{Code: "B", Name: "beta", Severity: catalog.SeverityMed},
		{Code: "C", Name: "gamma", Severity: catalog.SeverityInfo},
	})
	if err != nil {
		t.Fatal(err)
	}
	bank, err := questionbank.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return diagnosis.NewEngine(cat, bank)
}

func testDrafts(t *testing.T) *draft.Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "entry.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return draft.NewService(st.DraftRepo())
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var (
	tabKey   = tea.KeyPressMsg{Code: tea.KeyTab}
	rightKey = tea.KeyPressMsg{Code: tea.KeyRight}
	spaceKey = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	escKey   = tea.KeyPressMsg{Code: tea.KeyEscape}
	saveKey  = tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
)

func newLoaded(t *testing.T, deps screens.Deps) *EntryScreen {
	t.Helper()
	s := New(deps)
	s.Update(s.Init()())
	if !s.loaded {
		t.Fatal("form not loaded")
	}
	return s
}

func TestEntry_LoadsDraft(t *testing.T) {
	drafts := testDrafts(t)
	want := store.DraftData{
		Version:          store.DraftVersion,
		Profile:          "work",
		Overload:         7,
		Codes:            []string{"B", "A"},
		Note:             "long day",
		Actions:          store.Actions{Scope: true, Stop: true},
		BoundaryTemplate: draft.BoundaryTemplates[2],
		BoundaryNote:     "after 6pm",
	}
	if err := drafts.Save(context.Background(), want); err != nil {
		t.Fatal(err)
	}

	s := newLoaded(t, screens.Deps{Engine: testEngine(t), Drafts: drafts})
	got := s.data()

	if got.Profile != want.Profile || got.Overload != want.Overload {
		t.Errorf("profile/load = %s/%d, want %s/%d", got.Profile, got.Overload, want.Profile, want.Overload)
	}
	if strings.Join(got.Codes, ",") != "B,A" {
		t.Errorf("codes = %v, want [B A]", got.Codes)
	}
	if got.Actions != want.Actions {
		t.Errorf("actions = %+v, want %+v", got.Actions, want.Actions)
	}
	if got.BoundaryTemplate != want.BoundaryTemplate || got.BoundaryNote != want.BoundaryNote || got.Note != want.Note {
		t.Errorf("text fields = %q %q %q", got.BoundaryTemplate, got.BoundaryNote, got.Note)
	}
}

func TestEntry_KeepsUnknownBoundaryTemplate(t *testing.T) {
	s := New(screens.Deps{Engine: testEngine(t)})
	s.Update(draftLoadedMsg{Data: store.DraftData{Profile: "solo", BoundaryTemplate: "Not today."}})

	if got := s.data().BoundaryTemplate; got != "Not today." {
		t.Errorf("boundary template = %q, want the imported phrase", got)
	}
	if len(draft.BoundaryTemplates) == len(s.boundary.Options) {
		t.Error("stock templates should not be modified")
	}
}

func TestEntry_FieldNavigation(t *testing.T) {
	s := newLoaded(t, screens.Deps{Engine: testEngine(t)})

	if s.focus != fieldProfile {
		t.Fatalf("focus = %d, want profile", s.focus)
	}
	s.Update(rightKey)
	if got := s.data().Profile; got != string(diagnosis.AllProfiles()[0]) {
		t.Errorf("profile = %s after wrapping right from other", got)
	}

	s.Update(tabKey)
	if s.focus != fieldLoad {
		t.Fatalf("focus = %d, want load", s.focus)
	}
	s.Update(key('8'))
	s.Update(rightKey)
	if s.load.Value != 9 {
		t.Errorf("load = %d, want 9", s.load.Value)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.focus != fieldProfile {
		t.Errorf("focus = %d after shift+tab, want profile", s.focus)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.focus != fieldSave {
		t.Errorf("focus = %d, want wrap to save", s.focus)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.focus != fieldProfile {
		t.Errorf("focus = %d after down, want profile", s.focus)
	}
}

func TestEntry_ToggleCodes(t *testing.T) {
	s := newLoaded(t, screens.Deps{Engine: testEngine(t)})
	s.Update(tabKey)
	s.Update(tabKey)
	if s.focus != fieldCodes {
		t.Fatalf("focus = %d, want codes", s.focus)
	}

	s.Update(spaceKey)
	s.Update(rightKey)
	s.Update(rightKey)
	s.Update(spaceKey)
	if got := strings.Join(s.selection.Codes(), ","); got != "A,C" {
		t.Fatalf("selection = %s, want A,C", got)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	s.Update(key('x'))
	if got := strings.Join(s.selection.Codes(), ","); got != "C" {
		t.Errorf("selection = %s, want C", got)
	}
	if !s.dirty {
		t.Error("toggling codes should mark the form dirty")
	}

	// The grid has a single row; up leaves it.
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.focus != fieldLoad {
		t.Errorf("focus = %d after up, want load", s.focus)
	}
}

func TestEntry_TypingNote(t *testing.T) {
	s := newLoaded(t, screens.Deps{Engine: testEngine(t)})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.focus != fieldNote || !s.note.Focused() {
		t.Fatalf("focus = %d, want a focused note", s.focus)
	}

	for _, r := range "ok j" {
		s.Update(key(r))
	}
	if got := s.note.Value(); got != "ok j" {
		t.Errorf("note = %q, want %q", got, "ok j")
	}
	if s.focus != fieldNote {
		t.Error("letters should not move focus out of a text field")
	}

	s.Update(tabKey)
	if s.note.Focused() {
		t.Error("note should blur when focus moves")
	}
}

func TestEntry_TabPersistsDraft(t *testing.T) {
	drafts := testDrafts(t)
	s := newLoaded(t, screens.Deps{Engine: testEngine(t), Drafts: drafts})

	s.Update(tabKey)
	s.Update(key('6'))
	_, cmd := s.Update(tabKey)
	if cmd == nil {
		t.Fatal("expected a draft save")
	}
	if msg, ok := cmd().(draftSavedMsg); !ok || msg.Err != nil {
		t.Fatalf("save msg = %#v", msg)
	}

	data, err := drafts.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if data.Overload != 6 {
		t.Errorf("draft overload = %d, want 6", data.Overload)
	}

	// Nothing changed since; no save.
	if _, cmd := s.Update(tabKey); cmd != nil {
		t.Error("unchanged form should not save")
	}
}

func TestEntry_SaveAppendsEntry(t *testing.T) {
	repo := &mockEntryRepo{}
	s := newLoaded(t, screens.Deps{Engine: testEngine(t), Entries: repo})
	s.Update(draftLoadedMsg{Data: store.DraftData{
		Profile:  "counsel",
		Overload: 4,
		Codes:    []string{"B"},
		Note:     "n",
		Actions:  store.Actions{Body: true},
	}})

	_, cmd := s.Update(saveKey)
	if cmd == nil {
		t.Fatal("expected save command")
	}
	s.Update(cmd())

	if len(repo.entries) != 1 {
		t.Fatalf("saved %d entries, want 1", len(repo.entries))
	}
	e := repo.entries[0]
	if e.Profile != "counsel" || e.Overload != 4 || strings.Join(e.Codes, ",") != "B" || !e.Actions.Body || e.Note != "n" {
		t.Errorf("entry = %+v", e)
	}
	if s.status != "Saved." {
		t.Errorf("status = %q, want Saved.", s.status)
	}
	if s.selection.Len() != 1 {
		t.Error("saving should not clear the form")
	}
}

func TestEntry_SaveErrors(t *testing.T) {
	s := newLoaded(t, screens.Deps{Engine: testEngine(t)})
	if _, cmd := s.Update(saveKey); cmd != nil {
		t.Error("save without storage should not issue a command")
	}
	if !strings.Contains(s.errMsg, "not saved") {
		t.Errorf("errMsg = %q", s.errMsg)
	}

	repo := &mockEntryRepo{err: errors.New("locked")}
	s = newLoaded(t, screens.Deps{Engine: testEngine(t), Entries: repo})
	_, cmd := s.Update(saveKey)
	s.Update(cmd())
	if !strings.Contains(s.errMsg, "locked") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestEntry_EscSavesDraftAndPops(t *testing.T) {
	drafts := testDrafts(t)
	s := newLoaded(t, screens.Deps{Engine: testEngine(t), Drafts: drafts})
	s.Update(tabKey)
	s.Update(tabKey)
	s.Update(spaceKey)

	_, cmd := s.Update(escKey)
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("esc should pop the form")
	}
	data, err := drafts.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(data.Codes, ",") != "A" {
		t.Errorf("draft codes = %v, want [A]", data.Codes)
	}
}

func TestEntry_View(t *testing.T) {
	s := newLoaded(t, screens.Deps{Engine: testEngine(t)})
	view := s.View(100, 30)
	for _, want := range []string{"Profile", "Load", "none selected", "Save log"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
