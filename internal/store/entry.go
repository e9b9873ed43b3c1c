package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var entryColumns = []string{
	colID,
	colSequence,
	colTimestamp,
	"profile",
	"overload",
	"codes",
	"note",
	"actions",
	"boundary_template",
	"boundary_note",
}

// entryRepo implements EntryRepo over the log_entries table.
type entryRepo struct {
	db     *sql.DB
	seq    *sequenceCounter
	logger *zap.Logger
}

// normalizeEntry fills in defaults and clamps the overload level.
func normalizeEntry(e *Entry) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	e.Timestamp = e.Timestamp.UTC()
	e.Overload = min(max(e.Overload, MinOverload), MaxOverload)
	if e.Codes == nil {
		e.Codes = []string{}
	}
}

func insertEntry(ctx context.Context, q execQuerier, e *Entry) error {
	codes, err := marshalJSON(e.Codes)
	if err != nil {
		return fmt.Errorf("codes: %w", err)
	}
	actions, err := marshalJSON(e.Actions)
	if err != nil {
		return fmt.Errorf("actions: %w", err)
	}

	query, args := builder().Insert(tableEntries).
		Columns(entryColumns...).
		Values(
			e.ID,
			e.Sequence,
			formatTS(e.Timestamp),
			e.Profile,
			e.Overload,
			codes,
			e.Note,
			actions,
			e.BoundaryTemplate,
			e.BoundaryNote,
		).
		Query()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert entry %s: %w", e.ID, err)
	}
	return nil
}

func (r *entryRepo) Append(ctx context.Context, e *Entry) error {
	normalizeEntry(e)
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	e.Sequence = seq
	if err := insertEntry(ctx, r.db, e); err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

func (r *entryRepo) List(ctx context.Context, opts QueryOpts) ([]Entry, error) {
	preds := commonPredicates(opts)
	if opts.Profile != "" {
		preds = append(preds, entsql.EQ("profile", opts.Profile))
	}
	if opts.Code != "" {
		preds = append(preds, entsql.Contains("codes", strconv.Quote(opts.Code)))
	}

	sel := builder().Select(entryColumns...).From(entsql.Table(tableEntries))
	query, args := applyPaging(sel, preds, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

func (r *entryRepo) Get(ctx context.Context, id string) (*Entry, error) {
	query, args := builder().Select(entryColumns...).
		From(entsql.Table(tableEntries)).
		Where(entsql.EQ(colID, id)).
		Query()

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *entryRepo) Delete(ctx context.Context, id string) error {
	query, args := builder().Delete(tableEntries).
		Where(entsql.EQ(colID, id)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *entryRepo) ReplaceAll(ctx context.Context, entries []Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Delete(tableEntries).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	// Entries arrive newest first; insert oldest first so that sequence
	// order matches.
	seen := make(map[string]bool, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		normalizeEntry(&e)
		if seen[e.ID] {
			return fmt.Errorf("replace entries: duplicate id %s", e.ID)
		}
		seen[e.ID] = true

		seq, err := r.seq.NextIn(ctx, tx)
		if err != nil {
			return err
		}
		e.Sequence = seq
		if err := insertEntry(ctx, tx, &e); err != nil {
			return fmt.Errorf("replace entries: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	r.logger.Info("log entries replaced", zap.Int("count", len(entries)))
	return nil
}

func (r *entryRepo) Wipe(ctx context.Context) (int64, error) {
	query, args := builder().Delete(tableEntries).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("wipe entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("wipe entries: %w", err)
	}
	r.logger.Info("log entries wiped", zap.Int64("count", n))
	return n, nil
}

func (r *entryRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().Select().Count().From(entsql.Table(tableEntries)).Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		e       Entry
		ts      string
		codes   string
		actions string
	)
	err := row.Scan(
		&e.ID,
		&e.Sequence,
		&ts,
		&e.Profile,
		&e.Overload,
		&codes,
		&e.Note,
		&actions,
		&e.BoundaryTemplate,
		&e.BoundaryNote,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan entry: %w", err)
	}

	if e.Timestamp, err = parseTS(ts); err != nil {
		return nil, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	if err := unmarshalJSON(codes, &e.Codes); err != nil {
		return nil, fmt.Errorf("entry %s codes: %w", e.ID, err)
	}
	if e.Codes == nil {
		e.Codes = []string{}
	}
	if err := unmarshalJSON(actions, &e.Actions); err != nil {
		return nil, fmt.Errorf("entry %s actions: %w", e.ID, err)
	}
	return &e, nil
}
