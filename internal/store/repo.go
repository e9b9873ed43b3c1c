package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures record queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	Offset int       // results to skip
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Entry-only filters.
	Profile string // exact profile match
	Code    string // entries whose codes include Code
}

// Actions records which quick actions were taken.
type Actions struct {
	Distance bool `json:"distance"`
	Scope    bool `json:"scope"`
	Body     bool `json:"body"`
	Stop     bool `json:"stop"`
}

// Any reports whether any action is set.
func (a Actions) Any() bool {
	return a.Distance || a.Scope || a.Body || a.Stop
}

// Labels returns the names of the actions taken.
func (a Actions) Labels() []string {
	var out []string
	if a.Distance {
		out = append(out, "distance")
	}
	if a.Scope {
		out = append(out, "scope")
	}
	if a.Body {
		out = append(out, "body")
	}
	if a.Stop {
		out = append(out, "stop")
	}
	return out
}

// Overload scale bounds.
const (
	MinOverload = 0
	MaxOverload = 10
)

// Entry is a saved log entry. The JSON shape is the export format.
type Entry struct {
	ID               string    `json:"id"`
	Sequence         int64     `json:"-"`
	Timestamp        time.Time `json:"ts"`
	Profile          string    `json:"profile"`
	Overload         int       `json:"overload"`
	Codes            []string  `json:"err"`
	Note             string    `json:"note"`
	Actions          Actions   `json:"actions"`
	BoundaryTemplate string    `json:"boundaryTpl"`
	BoundaryNote     string    `json:"boundaryNote"`
}

// Boundary renders the template and note as the list view shows them.
func (e *Entry) Boundary() string {
	switch {
	case e.BoundaryTemplate != "" && e.BoundaryNote != "":
		return e.BoundaryTemplate + " / " + e.BoundaryNote
	case e.BoundaryNote != "":
		return " / " + e.BoundaryNote
	default:
		return e.BoundaryTemplate
	}
}

// EntryRepo manages log entries. Lists are newest first.
type EntryRepo interface {
	// Append stores a new entry, filling in ID, Timestamp and Sequence
	// when unset.
	Append(ctx context.Context, e *Entry) error

	// List returns entries matching opts, newest first.
	List(ctx context.Context, opts QueryOpts) ([]Entry, error)

	// Get returns the entry with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Entry, error)

	// Delete removes the entry with the given ID, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// ReplaceAll atomically replaces every entry with entries, which are
	// given newest first.
	ReplaceAll(ctx context.Context, entries []Entry) error

	// Wipe deletes every entry and returns how many were removed.
	Wipe(ctx context.Context) (int64, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)
}

// RunEntry is one ranked row of a recorded diagnosis run.
type RunEntry struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Score    int    `json:"score"`
}

// Run records a completed diagnosis session.
type Run struct {
	ID          int
	Sequence    int64
	SessionID   string
	StartedAt   time.Time
	CompletedAt time.Time
	Profile     string
	LoadLevel   int
	Answers     string // one Y or N per question, in bank order
	Ranked      []RunEntry
	Critical    bool
	Applied     []string // codes eligible for the selection
}

// RunRepo records diagnosis runs.
type RunRepo interface {
	// AppendRun stores a completed run.
	AppendRun(ctx context.Context, r *Run) error

	// QueryRuns returns runs matching opts, newest first.
	QueryRuns(ctx context.Context, opts QueryOpts) ([]Run, error)
}

// DraftData captures the in-progress log form: the context a diagnosis
// reads and the selection it writes back.
type DraftData struct {
	Version          int      `json:"version"`
	Profile          string   `json:"profile"`
	Overload         int      `json:"overload"`
	Codes            []string `json:"codes"`
	Note             string   `json:"note,omitempty"`
	Actions          Actions  `json:"actions"`
	BoundaryTemplate string   `json:"boundaryTpl,omitempty"`
	BoundaryNote     string   `json:"boundaryNote,omitempty"`
}

// Draft is a point-in-time capture of the log form.
type Draft struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      DraftData
}

// DraftRepo manages saved drafts.
type DraftRepo interface {
	// Save stores a new draft.
	Save(ctx context.Context, d *Draft) error

	// Latest returns the most recent draft, or nil if none exist.
	Latest(ctx context.Context) (*Draft, error)

	// Prune deletes all but the N most recent drafts.
	Prune(ctx context.Context, keep int) error
}
