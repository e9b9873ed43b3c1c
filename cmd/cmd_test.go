package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/kokeshes/wxk-check/internal/catalog"
	"github.com/kokeshes/wxk-check/internal/config"
	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/questionbank"
	"github.com/kokeshes/wxk-check/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{"WXK_DB", "WXK_CATALOG", "WXK_QUESTIONS", "WXK_PROFILE", "WXK_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	return filepath.Join(dir, "wxk.db")
}

func TestDiagnoseApplyThenLog(t *testing.T) {
	db := isolateEnv(t)
	answers := strings.Repeat("n", questionbank.Default().Len())

	out, err := execute(t, "diagnose", "--db", db, "--answers", answers, "--profile", "work", "--load", "3", "--apply")
	if err != nil {
		t.Fatalf("diagnose: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Applied to draft:") {
		t.Fatalf("diagnose output missing apply line:\n%s", out)
	}

	out, err = execute(t, "log", "add", "--db", db, "--note", "after check", "--actions", "scope,stop")
	if err != nil {
		t.Fatalf("log add: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "Saved ") {
		t.Fatalf("log add output = %q", out)
	}

	st, err := store.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	entries, err := st.EntryRepo().List(t.Context(), store.QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Profile != "other" || len(e.Codes) == 0 || !e.Actions.Scope || !e.Actions.Stop || e.Note != "after check" {
		t.Errorf("entry = %+v", e)
	}

	runs, err := st.RunRepo().QueryRuns(t.Context(), store.QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Profile != "work" || runs[0].LoadLevel != 3 {
		t.Errorf("runs = %+v", runs)
	}
}

func TestLogPathFor(t *testing.T) {
	db := isolateEnv(t)
	prev := cfg
	t.Cleanup(func() { cfg = prev })
	cfg = config.DefaultConfig()
	cfg.DBPath = db

	got, err := logPathFor(rootCmd)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if want := filepath.Join(filepath.Dir(db), logFileName); got != want {
		t.Errorf("root log path = %q, want %q", got, want)
	}

	for _, sub := range []*cobra.Command{diagnoseCmd, logCmd, versionCmd} {
		got, err := logPathFor(sub)
		if err != nil {
			t.Fatalf("%s: %v", sub.Name(), err)
		}
		if got != "" {
			t.Errorf("%s log path = %q, want stderr", sub.Name(), got)
		}
	}
}

func TestVersionRuns(t *testing.T) {
	isolateEnv(t)
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "wxk-check ") {
		t.Errorf("version output = %q", out)
	}
}

func TestParseActions(t *testing.T) {
	tests := []struct {
		in      []string
		want    store.Actions
		wantErr bool
	}{
		{nil, store.Actions{}, false},
		{[]string{"distance", "Body"}, store.Actions{Distance: true, Body: true}, false},
		{[]string{" scope ", ""}, store.Actions{Scope: true}, false},
		{[]string{"sleep"}, store.Actions{}, true},
	}
	for _, tt := range tests {
		got, err := parseActions(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseActions(%v) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseActions(%v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestAsk(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := ask(strings.NewReader(tt.input), &out, "Sure?")
		if err != nil {
			t.Fatalf("ask(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ask(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAskAll(t *testing.T) {
	cat, err := catalog.New([]catalog.Condition{
		{Code: "A", Name: "alpha", Severity: catalog.SeverityCritical, QuickAction: "stop"},
		{Code: "B", Name: "beta", Severity: catalog.SeverityMed, QuickAction: "slow"},
	})
	if err != nil {
		t.Fatal(err)
	}
	bank, err := questionbank.New([]questionbank.Question{
		{ID: "q1", Prompt: "First?", OnYes: questionbank.Evidence{"A": 5}},
		{ID: "q2", Prompt: "Second?", OnYes: questionbank.Evidence{"A": 3, "B": 4}, OnNo: questionbank.Evidence{"B": 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	engine := diagnosis.NewEngine(cat, bank, diagnosis.WithAdjusters())

	var out bytes.Buffer
	res, err := askAll(engine.NewSession(), strings.NewReader("yes\nwhat\nn\n"), &out, diagnosis.SessionContext{})
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(res.Codes(), ","); got != "A,B" {
		t.Errorf("ranked = %s, want A,B", got)
	}
	if !strings.Contains(out.String(), "Please answer y or n.") {
		t.Error("invalid input should be re-asked")
	}

	printResult(&out, res)
	if !strings.Contains(out.String(), "Critical detected") {
		t.Error("critical banner missing")
	}

	_, err = askAll(engine.NewSession(), strings.NewReader("y\n"), &out, diagnosis.SessionContext{})
	if err == nil || !strings.Contains(err.Error(), "input closed after 1 of 2") {
		t.Errorf("err = %v, want input closed", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Errorf("truncate long = %q", got)
	}
}
