package diagnosis

import "time"

// Result is the outcome of a finished session.
type Result struct {
	SessionID string
	Context   SessionContext
	Answers   []Answer

	// Scores is the final table after bias and clamping.
	Scores ScoreTable

	// Ranked holds at most the engine's limit entries, or the single
	// monitor entry when nothing scored.
	Ranked []RankedEntry

	// Critical is true when any ranked entry is Critical.
	Critical bool

	// Apply lists the ranked codes eligible for the selection.
	Apply []string

	StartedAt   time.Time
	CompletedAt time.Time
}

// Codes returns the ranked codes in order, including the monitor code.
func (r *Result) Codes() []string {
	out := make([]string, len(r.Ranked))
	for i, e := range r.Ranked {
		out[i] = e.Code
	}
	return out
}

// Top returns the first ranked entry.
func (r *Result) Top() RankedEntry {
	if len(r.Ranked) == 0 {
		return MonitorEntry()
	}
	return r.Ranked[0]
}
