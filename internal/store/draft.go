package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// DraftVersion is the current DraftData schema version.
const DraftVersion = 1

// draftRepo implements DraftRepo over the drafts table.
type draftRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *draftRepo) Save(ctx context.Context, d *Draft) error {
	if d.Data.Version == 0 {
		d.Data.Version = DraftVersion
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = time.Now()
	}
	if d.Data.Codes == nil {
		d.Data.Codes = []string{}
	}
	data, err := marshalJSON(d.Data)
	if err != nil {
		return fmt.Errorf("marshal draft data: %w", err)
	}

	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(tableDrafts).
		Columns(colSequence, colTimestamp, "data").
		Values(seq, formatTS(d.Timestamp), data).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	d.ID = int(id)
	d.Sequence = seq
	return nil
}

func (r *draftRepo) Latest(ctx context.Context) (*Draft, error) {
	query, args := builder().Select(colID, colSequence, colTimestamp, "data").
		From(entsql.Table(tableDrafts)).
		OrderBy(entsql.Desc(colSequence)).
		Limit(1).
		Query()

	var (
		d    Draft
		ts   string
		data string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.Sequence, &ts, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest draft: %w", err)
	}
	if d.Timestamp, err = parseTS(ts); err != nil {
		return nil, fmt.Errorf("draft %d: %w", d.ID, err)
	}
	if err := unmarshalJSON(data, &d.Data); err != nil {
		return nil, fmt.Errorf("unmarshal draft data: %w", err)
	}
	return &d, nil
}

func (r *draftRepo) Prune(ctx context.Context, keep int) error {
	keep = max(keep, 0)

	// Find the sequence threshold: the Nth most recent draft.
	query, args := builder().Select(colSequence).
		From(entsql.Table(tableDrafts)).
		OrderBy(entsql.Desc(colSequence)).
		Limit(1).
		Offset(keep).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep drafts exist
	}
	if err != nil {
		return fmt.Errorf("query drafts for prune: %w", err)
	}

	query, args = builder().Delete(tableDrafts).
		Where(entsql.LTE(colSequence, threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune drafts: %w", err)
	}
	return nil
}
