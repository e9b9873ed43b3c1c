package store

import (
	"encoding/json"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// builder returns an SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// commonPredicates translates the sequence and time filters of opts.
func commonPredicates(opts QueryOpts) []*entsql.Predicate {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT(colSequence, opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(colSequence, opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(colTimestamp, formatTS(opts.From)))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(colTimestamp, formatTS(opts.To)))
	}
	return preds
}

// applyPaging adds the predicates, newest-first order, limit and offset.
func applyPaging(sel *entsql.Selector, preds []*entsql.Predicate, opts QueryOpts) *entsql.Selector {
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	sel = sel.OrderBy(entsql.Desc(colSequence))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		if opts.Limit <= 0 {
			// SQLite requires LIMIT before OFFSET.
			sel = sel.Limit(-1)
		}
		sel = sel.Offset(opts.Offset)
	}
	return sel
}

func marshalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}
	return string(b), nil
}

func unmarshalJSON(s string, v any) error {
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}
