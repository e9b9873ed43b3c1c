// Package diagnosis runs a yes/no questionnaire over a question bank,
// accumulates weighted evidence per condition code, applies the contextual
// bias and ranks the result.
package diagnosis

import (
	"errors"
	"fmt"
	"strings"
)

// Answer is the response to a single question.
type Answer int

const (
	AnswerNo Answer = iota
	AnswerYes
)

func (a Answer) String() string {
	if a == AnswerYes {
		return "yes"
	}
	return "no"
}

// Yes reports whether a is AnswerYes.
func (a Answer) Yes() bool { return a == AnswerYes }

// MarshalText implements encoding.TextMarshaler.
func (a Answer) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Answer) UnmarshalText(b []byte) error {
	v, err := ParseAnswer(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAnswer accepts y/yes/true/1 and n/no/false/0, case-insensitively.
func ParseAnswer(s string) (Answer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1", "はい":
		return AnswerYes, nil
	case "n", "no", "false", "0", "いいえ":
		return AnswerNo, nil
	}
	return AnswerNo, fmt.Errorf("invalid answer %q (want yes or no)", s)
}

// FormatAnswers renders answers compactly as a string of Y and N.
func FormatAnswers(answers []Answer) string {
	var sb strings.Builder
	for _, a := range answers {
		if a.Yes() {
			sb.WriteByte('Y')
		} else {
			sb.WriteByte('N')
		}
	}
	return sb.String()
}

// ParseAnswers is the inverse of FormatAnswers.
func ParseAnswers(s string) ([]Answer, error) {
	out := make([]Answer, 0, len(s))
	for i, r := range s {
		switch r {
		case 'Y', 'y':
			out = append(out, AnswerYes)
		case 'N', 'n':
			out = append(out, AnswerNo)
		default:
			return nil, fmt.Errorf("invalid answer %q at position %d", r, i)
		}
	}
	return out, nil
}

// Profile is the life context a run is evaluated in.
type Profile string

const (
	ProfileRelationship Profile = "relationship"
	ProfileWork         Profile = "work"
	ProfileCounsel      Profile = "counsel"
	ProfileSolo         Profile = "solo"
	ProfileOther        Profile = "other"
)

// AllProfiles returns every profile in display order.
func AllProfiles() []Profile {
	return []Profile{
		ProfileRelationship,
		ProfileWork,
		ProfileCounsel,
		ProfileSolo,
		ProfileOther,
	}
}

// Label returns a human-readable name for the profile.
func (p Profile) Label() string {
	switch p {
	case ProfileRelationship:
		return "Relationship"
	case ProfileWork:
		return "Work/Research"
	case ProfileCounsel:
		return "Counsel/Friend"
	case ProfileSolo:
		return "Solo"
	case ProfileOther:
		return "Other"
	default:
		return string(p)
	}
}

// ParseProfile maps a profile name, alias or legacy label to a Profile.
// Anything unrecognised is ProfileOther.
func ParseProfile(s string) Profile {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "relationship", "romance", "love", "恋愛":
		return ProfileRelationship
	case "work", "research", "work/research", "仕事", "研究", "仕事/研究":
		return ProfileWork
	case "counsel", "friend", "counsel/friend", "相談", "友人", "相談/友人":
		return ProfileCounsel
	case "solo", "alone", "単独":
		return ProfileSolo
	default:
		return ProfileOther
	}
}

// Load scale bounds.
const (
	MinLoad = 0
	MaxLoad = 10
)

// SessionContext is the context read once when a session finishes.
type SessionContext struct {
	Profile   Profile `json:"profile"`
	LoadLevel int     `json:"load"`
}

// Normalize returns c with the profile resolved through ParseProfile and
// the load level clamped to [MinLoad, MaxLoad].
func (c SessionContext) Normalize() SessionContext {
	c.Profile = ParseProfile(string(c.Profile))
	c.LoadLevel = ClampLoad(c.LoadLevel)
	return c
}

// ClampLoad clamps v to [MinLoad, MaxLoad].
func ClampLoad(v int) int {
	return min(max(v, MinLoad), MaxLoad)
}

// State is the lifecycle state of a Session.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Sentinel errors for out-of-order session operations. A call that returns
// one of these has not changed the session.
var (
	ErrNotStarted        = errors.New("diagnosis session not started")
	ErrAlreadyStarted    = errors.New("diagnosis session already started")
	ErrSessionComplete   = errors.New("diagnosis session already complete")
	ErrSessionIncomplete = errors.New("diagnosis session has unanswered questions")
	ErrAnswerCount       = errors.New("answer count does not match question bank")
)
