package diagnosis

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kokeshes/wxk-check/internal/questionbank"
)

// Session walks the question bank once, in order, accumulating evidence.
//
//	NotStarted --Start--> InProgress --Answer x N--> Completed
//
// Finish applies the contextual bias exactly once and ranks the result; the
// result is cached and returned by later calls. Sessions are not safe for
// concurrent use. An abandoned session needs no cleanup.
type Session struct {
	ID string

	engine    *Engine
	state     State
	index     int
	scores    ScoreTable
	answers   []Answer
	result    *Result
	startedAt time.Time
}

func newSession(e *Engine) *Session {
	return &Session{
		ID:     uuid.NewString(),
		engine: e,
		state:  StateNotStarted,
	}
}

// Start moves the session to InProgress with a freshly seeded score table.
// Starting over an empty bank completes the session immediately.
func (s *Session) Start() error {
	if s.state != StateNotStarted {
		return ErrAlreadyStarted
	}
	s.scores = s.engine.seed()
	s.answers = make([]Answer, 0, s.engine.bank.Len())
	s.startedAt = time.Now()
	s.state = StateInProgress
	if s.engine.bank.Len() == 0 {
		s.state = StateCompleted
	}
	s.engine.logger.Debug("diagnosis session started",
		zap.String("session_id", s.ID),
		zap.Int("questions", s.engine.bank.Len()),
	)
	return nil
}

// State returns the session's lifecycle state.
func (s *Session) State() State { return s.state }

// Index returns the number of questions answered so far.
func (s *Session) Index() int { return s.index }

// Len returns the number of questions in the session.
func (s *Session) Len() int { return s.engine.bank.Len() }

// StartedAt returns when Start was called.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Current returns the question awaiting an answer.
func (s *Session) Current() (questionbank.Question, error) {
	switch s.state {
	case StateNotStarted:
		return questionbank.Question{}, ErrNotStarted
	case StateCompleted:
		return questionbank.Question{}, ErrSessionComplete
	}
	return s.engine.bank.At(s.index)
}

// Answer applies the evidence for a to the current question and advances.
// After the last question the session is Completed.
func (s *Session) Answer(a Answer) error {
	q, err := s.Current()
	if err != nil {
		return err
	}
	s.scores.Apply(q.Evidence(a.Yes()))
	s.answers = append(s.answers, a)
	s.index++
	if s.index == s.engine.bank.Len() {
		s.state = StateCompleted
	}
	return nil
}

// Answers returns the answers given so far, in bank order.
func (s *Session) Answers() []Answer {
	out := make([]Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// Scores returns a copy of the current score table. Before Finish it holds
// the raw evidence; after Finish it holds the biased, clamped table.
func (s *Session) Scores() ScoreTable {
	return s.scores.Clone()
}

// Finish applies the contextual bias for ctx, clamps negative scores to
// zero and ranks the table. It requires a Completed session. Subsequent
// calls return the first result unchanged and ignore ctx.
func (s *Session) Finish(ctx SessionContext) (*Result, error) {
	switch s.state {
	case StateNotStarted:
		return nil, ErrNotStarted
	case StateInProgress:
		return nil, ErrSessionIncomplete
	}
	if s.result != nil {
		return s.result, nil
	}

	ctx = ctx.Normalize()
	ApplyBias(s.engine.adjusters, ctx, s.scores)
	s.scores.Clamp()

	ranked := s.engine.Rank(s.scores)
	s.result = &Result{
		SessionID:   s.ID,
		Context:     ctx,
		Answers:     s.Answers(),
		Scores:      s.scores.Clone(),
		Ranked:      ranked,
		Critical:    HasCritical(ranked),
		Apply:       CodesToApply(ranked, s.engine.catalog),
		StartedAt:   s.startedAt,
		CompletedAt: time.Now(),
	}

	s.engine.logger.Debug("diagnosis session finished",
		zap.String("session_id", s.ID),
		zap.String("profile", string(ctx.Profile)),
		zap.Int("load", ctx.LoadLevel),
		zap.Strings("top", s.result.Codes()),
		zap.Bool("critical", s.result.Critical),
	)
	return s.result, nil
}

// Result returns the finished result, or nil before Finish.
func (s *Session) Result() *Result { return s.result }
