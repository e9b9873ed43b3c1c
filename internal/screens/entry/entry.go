// Package entry is the log form: profile, load, codes, quick actions,
// boundary phrase and note. Edits are kept in the draft so a diagnosis can
// read the context and write codes back.
package entry

import (
	"context"
	"slices"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/draft"
	"github.com/kokeshes/wxk-check/internal/router"
	"github.com/kokeshes/wxk-check/internal/screen"
	"github.com/kokeshes/wxk-check/internal/screens"
	"github.com/kokeshes/wxk-check/internal/store"
	"github.com/kokeshes/wxk-check/internal/ui/components"
)

type field int

const (
	fieldProfile field = iota
	fieldLoad
	fieldCodes
	fieldActions
	fieldBoundary
	fieldBoundaryNote
	fieldNote
	fieldSave
	fieldCount
)

// Text limits.
const (
	noteLimit         = 500
	boundaryNoteLimit = 120
)

var actionLabels = []string{"Take distance", "Set scope", "Body care", "Stop"}

type draftLoadedMsg struct {
	Data store.DraftData
	Err  error
}

type draftSavedMsg struct {
	Err error
}

type entrySavedMsg struct {
	Entry *store.Entry
	Err   error
}

// EntryScreen edits the draft and saves it as a log entry.
type EntryScreen struct {
	deps     screens.Deps
	profiles []diagnosis.Profile

	loaded bool
	focus  field
	dirty  bool

	profile      components.Choice
	load         components.Slider
	chips        components.ChipGrid
	selection    *diagnosis.Selection
	actions      components.Checklist
	boundary     components.Choice
	boundaryNote components.TextInput
	note         components.TextInput

	status string
	errMsg string
}

var _ screen.Screen = (*EntryScreen)(nil)
var _ screen.KeyHintProvider = (*EntryScreen)(nil)

// New creates the log form. deps.Engine must be set.
func New(deps screens.Deps) *EntryScreen {
	profiles := diagnosis.AllProfiles()
	labels := make([]string, len(profiles))
	for i, p := range profiles {
		labels[i] = p.Label()
	}

	conds := deps.Engine.Catalog().All()
	chips := make([]components.Chip, len(conds))
	for i, c := range conds {
		chips[i] = components.Chip{Code: c.Code, Label: c.Name}
	}

	s := &EntryScreen{
		deps:         deps,
		profiles:     profiles,
		profile:      components.NewChoice(labels, diagnosis.ProfileOther.Label()),
		load:         components.NewSlider(diagnosis.MinLoad, diagnosis.MaxLoad, 0, 24),
		chips:        components.NewChipGrid(chips, 3, 4),
		selection:    diagnosis.NewSelection(),
		actions:      components.NewChecklist(actionLabels...),
		boundary:     components.NewChoice(draft.BoundaryTemplates, ""),
		boundaryNote: components.NewTextInput("optional", boundaryNoteLimit),
		note:         components.NewTextInput("what happened", noteLimit),
	}
	return s
}

func (s *EntryScreen) Init() tea.Cmd {
	drafts := s.deps.Drafts
	return func() tea.Msg {
		if drafts == nil {
			return draftLoadedMsg{Data: store.DraftData{Profile: string(diagnosis.ProfileOther)}}
		}
		data, err := drafts.Load(context.Background())
		return draftLoadedMsg{Data: data, Err: err}
	}
}

func (s *EntryScreen) Title() string {
	return "New Log"
}

// apply fills the form from data.
func (s *EntryScreen) apply(data store.DraftData) {
	p := diagnosis.ParseProfile(data.Profile)
	if i := slices.Index(s.profiles, p); i >= 0 {
		s.profile.Selected = i
	}
	s.load.Value = diagnosis.ClampLoad(data.Overload)
	s.selection.Replace(data.Codes)
	s.actions.Checked = []bool{data.Actions.Distance, data.Actions.Scope, data.Actions.Body, data.Actions.Stop}

	options := draft.BoundaryTemplates
	if !slices.Contains(options, data.BoundaryTemplate) {
		// Keep an imported phrase that is not one of the stock ones.
		options = append(slices.Clone(options), data.BoundaryTemplate)
	}
	s.boundary = components.NewChoice(options, data.BoundaryTemplate)
	s.boundaryNote.SetValue(data.BoundaryNote)
	s.note.SetValue(data.Note)
}

// data reads the form back into a draft.
func (s *EntryScreen) data() store.DraftData {
	p := diagnosis.ProfileOther
	if s.profile.Selected >= 0 && s.profile.Selected < len(s.profiles) {
		p = s.profiles[s.profile.Selected]
	}
	return store.DraftData{
		Version:  store.DraftVersion,
		Profile:  string(p),
		Overload: s.load.Value,
		Codes:    s.selection.Codes(),
		Note:     s.note.Value(),
		Actions: store.Actions{
			Distance: s.actions.Checked[0],
			Scope:    s.actions.Checked[1],
			Body:     s.actions.Checked[2],
			Stop:     s.actions.Checked[3],
		},
		BoundaryTemplate: s.boundary.Value(),
		BoundaryNote:     s.boundaryNote.Value(),
	}
}

func (s *EntryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case draftLoadedMsg:
		if msg.Err != nil {
			s.deps.Log().Warn("load draft", zap.Error(msg.Err))
			s.errMsg = "Could not read the draft: " + msg.Err.Error()
		} else {
			s.apply(msg.Data)
		}
		s.loaded = true
		return s, nil

	case draftSavedMsg:
		if msg.Err != nil {
			s.errMsg = "Draft not saved: " + msg.Err.Error()
		}
		return s, nil

	case entrySavedMsg:
		if msg.Err != nil {
			s.errMsg = "Save failed: " + msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.status = "Saved."
		return s, nil

	case tea.KeyMsg:
		if !s.loaded {
			if msg.String() == "esc" {
				return s, router.Pop()
			}
			return s, nil
		}
		return s.handleKey(msg)
	}

	// Cursor blink and other input messages.
	var cmd tea.Cmd
	switch s.focus {
	case fieldBoundaryNote:
		s.boundaryNote, cmd = s.boundaryNote.Update(msg)
	case fieldNote:
		s.note, cmd = s.note.Update(msg)
	}
	return s, cmd
}

func (s *EntryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		return s, s.leave()
	case "ctrl+s":
		return s, s.save()
	case "tab":
		return s, s.moveFocus(1)
	case "shift+tab":
		return s, s.moveFocus(-1)
	case "up":
		if s.focus != fieldCodes {
			return s, s.moveFocus(-1)
		}
	case "down":
		if s.focus != fieldCodes {
			return s, s.moveFocus(1)
		}
	}

	s.status = ""
	switch s.focus {
	case fieldProfile:
		s.markDirty(s.profile.HandleKey(key))
	case fieldLoad:
		s.markDirty(s.load.HandleKey(key))
	case fieldCodes:
		switch key {
		case "space", "enter", "x":
			if code := s.chips.Current(); code != "" {
				s.selection.Toggle(code)
				s.dirty = true
			}
		default:
			prev := s.chips.Cursor
			s.chips.HandleKey(key)
			// Leave the grid through its top and bottom edges.
			if s.chips.Cursor == prev {
				switch key {
				case "up":
					return s, s.moveFocus(-1)
				case "down":
					return s, s.moveFocus(1)
				}
			}
		}
	case fieldActions:
		s.markDirty(s.actions.HandleKey(key))
	case fieldBoundary:
		s.markDirty(s.boundary.HandleKey(key))
	case fieldBoundaryNote:
		if key == "enter" {
			return s, s.moveFocus(1)
		}
		return s, s.updateInput(&s.boundaryNote, msg)
	case fieldNote:
		if key == "enter" {
			return s, s.moveFocus(1)
		}
		return s, s.updateInput(&s.note, msg)
	case fieldSave:
		if key == "enter" || key == "space" {
			return s, s.save()
		}
	}
	return s, nil
}

func (s *EntryScreen) markDirty(changed bool) {
	if changed {
		s.dirty = true
	}
}

func (s *EntryScreen) updateInput(in *components.TextInput, msg tea.Msg) tea.Cmd {
	prev := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	s.markDirty(in.Value() != prev)
	return cmd
}

// moveFocus cycles through the fields, persisting the draft when it
// changed.
func (s *EntryScreen) moveFocus(delta int) tea.Cmd {
	s.boundaryNote.Blur()
	s.note.Blur()
	s.focus = (s.focus + field(delta) + fieldCount) % fieldCount

	var cmds []tea.Cmd
	switch s.focus {
	case fieldBoundaryNote:
		cmds = append(cmds, s.boundaryNote.Focus())
	case fieldNote:
		cmds = append(cmds, s.note.Focus())
	}
	cmds = append(cmds, s.persist())
	return tea.Batch(cmds...)
}

// persist saves the draft in the background if it changed.
func (s *EntryScreen) persist() tea.Cmd {
	drafts := s.deps.Drafts
	if drafts == nil || !s.dirty {
		return nil
	}
	s.dirty = false
	data := s.data()
	return func() tea.Msg {
		return draftSavedMsg{Err: drafts.Save(context.Background(), data)}
	}
}

// leave saves a changed draft and closes the form.
func (s *EntryScreen) leave() tea.Cmd {
	drafts := s.deps.Drafts
	if drafts == nil || !s.dirty {
		return router.Pop()
	}
	s.dirty = false
	data := s.data()
	logger := s.deps.Log()
	return func() tea.Msg {
		if err := drafts.Save(context.Background(), data); err != nil {
			logger.Warn("save draft on leave", zap.Error(err))
		}
		return router.PopScreenMsg{}
	}
}

// save appends the form as a log entry and keeps the draft in sync. The
// form is not cleared.
func (s *EntryScreen) save() tea.Cmd {
	entries := s.deps.Entries
	if entries == nil {
		s.errMsg = "No storage; entry not saved."
		return nil
	}
	drafts := s.deps.Drafts
	s.dirty = false
	data := s.data()
	logger := s.deps.Log()
	return func() tea.Msg {
		ctx := context.Background()
		e := draft.Entry(data)
		if err := entries.Append(ctx, e); err != nil {
			return entrySavedMsg{Err: err}
		}
		if drafts != nil {
			if err := drafts.Save(ctx, data); err != nil {
				logger.Warn("save draft after entry", zap.Error(err))
			}
		}
		logger.Debug("log entry saved", zap.String("id", e.ID), zap.Strings("codes", e.Codes))
		return entrySavedMsg{Entry: e}
	}
}
