// Package runs records finished diagnosis sessions in the store.
package runs

import (
	"context"
	"fmt"

	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/store"
)

// FromResult converts a finished session result into a run record. The
// monitor entry is kept so that quiet runs still list their outcome.
func FromResult(res *diagnosis.Result) *store.Run {
	ranked := make([]store.RunEntry, len(res.Ranked))
	for i, e := range res.Ranked {
		ranked[i] = store.RunEntry{
			Code:     e.Code,
			Severity: string(e.Severity),
			Score:    e.Score,
		}
	}
	applied := make([]string, len(res.Apply))
	copy(applied, res.Apply)
	return &store.Run{
		SessionID:   res.SessionID,
		StartedAt:   res.StartedAt,
		CompletedAt: res.CompletedAt,
		Profile:     string(res.Context.Profile),
		LoadLevel:   res.Context.LoadLevel,
		Answers:     diagnosis.FormatAnswers(res.Answers),
		Ranked:      ranked,
		Critical:    res.Critical,
		Applied:     applied,
	}
}

// Record stores res in repo and returns the stored run.
func Record(ctx context.Context, repo store.RunRepo, res *diagnosis.Result) (*store.Run, error) {
	run := FromResult(res)
	if err := repo.AppendRun(ctx, run); err != nil {
		return nil, fmt.Errorf("record run %s: %w", res.SessionID, err)
	}
	return run, nil
}

// Codes returns the ranked codes of a run in order.
func Codes(r *store.Run) []string {
	out := make([]string, len(r.Ranked))
	for i, e := range r.Ranked {
		out[i] = e.Code
	}
	return out
}
