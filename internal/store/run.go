package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var runColumns = []string{
	colID,
	colSequence,
	colTimestamp,
	"session_id",
	"started_at",
	"profile",
	"load_level",
	"answers",
	"ranked",
	"critical",
	"applied",
}

// runRepo implements RunRepo over the diagnosis_runs table.
type runRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *runRepo) AppendRun(ctx context.Context, run *Run) error {
	if run.SessionID == "" {
		return fmt.Errorf("append run: empty session id")
	}
	if run.CompletedAt.IsZero() {
		run.CompletedAt = time.Now()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.CompletedAt
	}

	ranked, err := marshalJSON(run.Ranked)
	if err != nil {
		return fmt.Errorf("append run ranked: %w", err)
	}
	applied := run.Applied
	if applied == nil {
		applied = []string{}
	}
	appliedJSON, err := marshalJSON(applied)
	if err != nil {
		return fmt.Errorf("append run applied: %w", err)
	}

	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(tableRuns).
		Columns(runColumns[1:]...).
		Values(
			seq,
			formatTS(run.CompletedAt),
			run.SessionID,
			formatTS(run.StartedAt),
			run.Profile,
			run.LoadLevel,
			run.Answers,
			ranked,
			run.Critical,
			appliedJSON,
		).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("append run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("append run: %w", err)
	}
	run.ID = int(id)
	run.Sequence = seq
	return nil
}

func (r *runRepo) QueryRuns(ctx context.Context, opts QueryOpts) ([]Run, error) {
	sel := builder().Select(runColumns...).From(entsql.Table(tableRuns))
	query, args := applyPaging(sel, commonPredicates(opts), opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			run       Run
			completed string
			started   string
			ranked    string
			applied   string
		)
		if err := rows.Scan(
			&run.ID,
			&run.Sequence,
			&completed,
			&run.SessionID,
			&started,
			&run.Profile,
			&run.LoadLevel,
			&run.Answers,
			&ranked,
			&run.Critical,
			&applied,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.CompletedAt, err = parseTS(completed); err != nil {
			return nil, fmt.Errorf("run %d: %w", run.ID, err)
		}
		if run.StartedAt, err = parseTS(started); err != nil {
			return nil, fmt.Errorf("run %d: %w", run.ID, err)
		}
		if err := unmarshalJSON(ranked, &run.Ranked); err != nil {
			return nil, fmt.Errorf("run %d ranked: %w", run.ID, err)
		}
		if err := unmarshalJSON(applied, &run.Applied); err != nil {
			return nil, fmt.Errorf("run %d applied: %w", run.ID, err)
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}
