package diagnosis

import (
	"testing"

	"github.com/kokeshes/wxk-check/internal/catalog"
	"github.com/kokeshes/wxk-check/internal/questionbank"
)

func testCatalog(t *testing.T, conds ...catalog.Condition) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(conds)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

func testBank(t *testing.T, qs ...questionbank.Question) *questionbank.Bank {
	t.Helper()
	b, err := questionbank.New(qs)
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}
	return b
}

func cond(code string, sev catalog.Severity) catalog.Condition {
	return catalog.Condition{Code: code, Name: "name-" + code, Severity: sev, QuickAction: "quick-" + code}
}

// twoQuestionEngine is the A/B fixture: Q1 yes {A:5}; Q2 yes {A:3,B:4}, no {B:2}.
// The work profile boosts B by one; there is no load bias.
func twoQuestionEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	cat := testCatalog(t, cond("A", catalog.SeverityMed), cond("B", catalog.SeverityMed))
	bank := testBank(t,
		questionbank.Question{ID: "q1", Prompt: "one", OnYes: questionbank.Evidence{"A": 5}},
		questionbank.Question{ID: "q2", Prompt: "two",
			OnYes: questionbank.Evidence{"A": 3, "B": 4},
			OnNo:  questionbank.Evidence{"B": 2}},
	)
	bias := &ProfileBias{Codes: map[Profile][]string{ProfileWork: {"B"}}, Weight: 1}
	opts = append([]Option{WithAdjusters(bias)}, opts...)
	return NewEngine(cat, bank, opts...)
}

func defaultEngine() *Engine {
	return NewEngine(catalog.Default(), questionbank.Default())
}

func allNo(n int) []Answer {
	return make([]Answer, n)
}

func questionbankQuestion(id string, yes, no map[string]int) questionbank.Question {
	return questionbank.Question{ID: id, Prompt: id, OnYes: yes, OnNo: no}
}
