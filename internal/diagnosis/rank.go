package diagnosis

import (
	"sort"

	"github.com/kokeshes/wxk-check/internal/catalog"
)

// DefaultLimit is the number of entries Rank returns when limit is not
// positive. It is also the most Rank ever returns.
const DefaultLimit = 3

// MonitorCode is the code of the synthetic entry returned when nothing
// scored.
const MonitorCode = "OK"

// RankedEntry is one row of a ranked result.
type RankedEntry struct {
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Severity    catalog.Severity `json:"severity"`
	QuickAction string           `json:"quick"`
	Score       int              `json:"score"`
}

// IsMonitor reports whether e is the synthetic "nothing scored" entry.
func (e RankedEntry) IsMonitor() bool {
	return e.Code == MonitorCode
}

// MonitorEntry returns the synthetic entry used for an empty result.
func MonitorEntry() RankedEntry {
	return RankedEntry{
		Code:        MonitorCode,
		Name:        "Monitor",
		Severity:    catalog.SeverityInfo,
		QuickAction: "Fine today. Just leave a log.",
		Score:       0,
	}
}

// Rank orders the positive scores in table by score descending, then
// severity rank descending, then code ascending, and returns the first limit
// entries, never more than DefaultLimit. An empty ranking yields a single MonitorEntry. Rank does not
// modify table.
func Rank(table ScoreTable, cat *catalog.Catalog, limit int) []RankedEntry {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}

	entries := make([]RankedEntry, 0, len(table))
	for _, code := range table.Codes() {
		score := table[code]
		if score <= 0 {
			continue
		}
		meta := cat.Lookup(code)
		entries = append(entries, RankedEntry{
			Code:        code,
			Name:        meta.Name,
			Severity:    meta.Severity,
			QuickAction: meta.QuickAction,
			Score:       score,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if ra, rb := a.Severity.Rank(), b.Severity.Rank(); ra != rb {
			return ra > rb
		}
		return a.Code < b.Code
	})

	if len(entries) == 0 {
		return []RankedEntry{MonitorEntry()}
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// HasCritical reports whether any entry is Critical.
func HasCritical(entries []RankedEntry) bool {
	for _, e := range entries {
		if e.Severity == catalog.SeverityCritical {
			return true
		}
	}
	return false
}
