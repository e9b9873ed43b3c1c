package diagnosis

import "sort"

// ScoreTable accumulates integer evidence per condition code for one run.
type ScoreTable map[string]int

// Add adds w to code's score.
func (t ScoreTable) Add(code string, w int) {
	t[code] += w
}

// Apply adds every weight in ev.
func (t ScoreTable) Apply(ev map[string]int) {
	for code, w := range ev {
		t[code] += w
	}
}

// Clamp raises every negative score to zero.
func (t ScoreTable) Clamp() {
	for code, v := range t {
		if v < 0 {
			t[code] = 0
		}
	}
}

// Clone returns an independent copy of t.
func (t ScoreTable) Clone() ScoreTable {
	out := make(ScoreTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Codes returns the codes in t, sorted.
func (t ScoreTable) Codes() []string {
	out := make([]string, 0, len(t))
	for code := range t {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
