// Package questionbank holds the ordered yes/no questions of a diagnosis run
// and the evidence each answer contributes.
package questionbank

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Evidence maps a condition code to the integer weight an answer adds to
// its score.
type Evidence map[string]int

// Codes returns the codes of e in sorted order.
func (e Evidence) Codes() []string {
	out := make([]string, 0, len(e))
	for code := range e {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// String renders e as "code:+w, ..." in code order.
func (e Evidence) String() string {
	if len(e) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(e))
	for _, code := range e.Codes() {
		parts = append(parts, fmt.Sprintf("%s:%+d", code, e[code]))
	}
	return strings.Join(parts, ", ")
}

func (e Evidence) clone() Evidence {
	out := make(Evidence, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Question is a single yes/no prompt. OnYes and OnNo may both be empty; such
// a question contributes nothing.
type Question struct {
	ID     string   `json:"id"`
	Prompt string   `json:"prompt"`
	Group  string   `json:"group,omitempty"`
	OnYes  Evidence `json:"on_yes,omitempty"`
	OnNo   Evidence `json:"on_no,omitempty"`
}

// Evidence returns the evidence map for the given answer.
func (q Question) Evidence(yes bool) Evidence {
	if yes {
		return q.OnYes
	}
	return q.OnNo
}

// Bank is an immutable ordered sequence of questions. It is safe for
// concurrent use.
type Bank struct {
	questions []Question
	byID      map[string]int
}

// New builds a bank from questions, preserving their order. IDs must be
// non-empty and unique. An empty bank is valid.
func New(questions []Question) (*Bank, error) {
	var errs []string
	b := &Bank{
		questions: make([]Question, 0, len(questions)),
		byID:      make(map[string]int, len(questions)),
	}
	for i, q := range questions {
		if q.ID == "" {
			errs = append(errs, fmt.Sprintf("question %d has an empty id", i))
			continue
		}
		if _, dup := b.byID[q.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate question id: %q", q.ID))
			continue
		}
		q.OnYes = q.OnYes.clone()
		q.OnNo = q.OnNo.clone()
		b.byID[q.ID] = len(b.questions)
		b.questions = append(b.questions, q)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("question bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return b, nil
}

// ErrOutOfRange is returned by At for an index outside the bank.
var ErrOutOfRange = errors.New("question index out of range")

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// At returns the question at index i.
func (b *Bank) At(i int) (Question, error) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(b.questions))
	}
	return b.questions[i], nil
}

// Get returns the question with the given id.
func (b *Bank) Get(id string) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// All returns every question in bank order. The evidence maps are shared
// with the bank and must not be modified.
func (b *Bank) All() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Codes returns every code referenced by any question, sorted.
func (b *Bank) Codes() []string {
	seen := make(map[string]bool)
	for _, q := range b.questions {
		for code := range q.OnYes {
			seen[code] = true
		}
		for code := range q.OnNo {
			seen[code] = true
		}
	}
	out := make([]string, 0, len(seen))
	for code := range seen {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
