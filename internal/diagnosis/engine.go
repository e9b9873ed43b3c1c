package diagnosis

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kokeshes/wxk-check/internal/catalog"
	"github.com/kokeshes/wxk-check/internal/questionbank"
)

// Engine pairs a catalog with a question bank and the bias rules, and
// starts scoring sessions over them. An Engine is immutable once built and
// safe for concurrent use; each Session it creates is not.
type Engine struct {
	catalog   *catalog.Catalog
	bank      *questionbank.Bank
	adjusters []Adjuster
	baseline  map[string]int
	limit     int
	logger    *zap.Logger
	issues    []questionbank.Issue
}

// Option configures an Engine.
type Option func(*Engine)

// WithAdjusters replaces the default bias rules.
func WithAdjusters(adjusters ...Adjuster) Option {
	return func(e *Engine) { e.adjusters = adjusters }
}

// WithBaseline pre-seeds every session's score table with code at score.
// Non-positive scores are ignored.
func WithBaseline(code string, score int) Option {
	return func(e *Engine) {
		if score > 0 {
			e.baseline[code] = score
		}
	}
}

// WithLimit sets how many ranked entries a result holds, at most
// DefaultLimit.
func WithLimit(n int) Option {
	return func(e *Engine) { e.limit = n }
}

// WithLogger sets the logger used for load-time warnings and run events.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine builds an engine. Evidence codes missing from the catalog are
// logged as warnings and kept; they rank with the catalog's unknown
// metadata.
func NewEngine(cat *catalog.Catalog, bank *questionbank.Bank, opts ...Option) *Engine {
	e := &Engine{
		catalog:   cat,
		bank:      bank,
		adjusters: DefaultAdjusters(),
		baseline:  make(map[string]int),
		limit:     DefaultLimit,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.issues = bank.Validate(cat)
	for _, iss := range e.issues {
		e.logger.Warn("question references unknown condition code",
			zap.String("question", iss.QuestionID),
			zap.String("branch", string(iss.Branch)),
			zap.String("code", iss.Code),
		)
	}
	for code := range e.baseline {
		if !cat.Has(code) {
			e.logger.Warn("baseline code not in catalog", zap.String("code", code))
		}
	}
	return e
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Bank returns the engine's question bank.
func (e *Engine) Bank() *questionbank.Bank { return e.bank }

// Issues returns the unknown-code references found when the engine was
// built.
func (e *Engine) Issues() []questionbank.Issue {
	out := make([]questionbank.Issue, len(e.issues))
	copy(out, e.issues)
	return out
}

// NewSession returns a fresh session with its own score table.
func (e *Engine) NewSession() *Session {
	return newSession(e)
}

// Evaluate runs a whole session non-interactively: one answer per question
// in bank order, then Finish with ctx.
func (e *Engine) Evaluate(answers []Answer, ctx SessionContext) (*Result, error) {
	if len(answers) != e.bank.Len() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrAnswerCount, len(answers), e.bank.Len())
	}
	s := e.NewSession()
	if err := s.Start(); err != nil {
		return nil, err
	}
	for _, a := range answers {
		if err := s.Answer(a); err != nil {
			return nil, err
		}
	}
	return s.Finish(ctx)
}

// Rank ranks table against the engine's catalog and limit.
func (e *Engine) Rank(table ScoreTable) []RankedEntry {
	return Rank(table, e.catalog, e.limit)
}

func (e *Engine) seed() ScoreTable {
	t := make(ScoreTable, len(e.baseline))
	for code, v := range e.baseline {
		t[code] = v
	}
	return t
}
