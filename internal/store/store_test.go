package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	require.NotNil(t, s.DB())
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.EntryRepo().Append(ctx, &Entry{Note: "kept"}))
	require.NoError(t, s.Close())

	// Migration is idempotent and the data survives.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.EntryRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if !assert.NoError(t, err, "PRAGMA %s", tt.pragma) {
			continue
		}
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestTablesCreated(t *testing.T) {
	s := openTestStore(t)
	for _, name := range []string{"log_entries", "diagnosis_runs", "drafts", "global_sequence"} {
		var got string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&got)
		assert.NoError(t, err, "table %s", name)
	}
}

func TestSequenceMonotonicAcrossTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	e := &Entry{Note: "a"}
	require.NoError(t, s.EntryRepo().Append(ctx, e))
	r := &Run{SessionID: "s1", Answers: "YN"}
	require.NoError(t, s.RunRepo().AppendRun(ctx, r))
	d := &Draft{Data: DraftData{Profile: "work"}}
	require.NoError(t, s.DraftRepo().Save(ctx, d))

	assert.Less(t, e.Sequence, r.Sequence)
	assert.Less(t, r.Sequence, d.Sequence)
}

func TestDraftSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.DraftRepo()
	ctx := context.Background()

	// No draft yet.
	d, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, d)

	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, repo.Save(ctx, &Draft{
		Timestamp: now,
		Data: DraftData{
			Profile:  "counsel",
			Overload: 7,
			Codes:    []string{"004", "E200"},
			Actions:  Actions{Distance: true},
		},
	}))

	d, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, DraftVersion, d.Data.Version)
	assert.Equal(t, "counsel", d.Data.Profile)
	assert.Equal(t, 7, d.Data.Overload)
	assert.Equal(t, []string{"004", "E200"}, d.Data.Codes)
	assert.True(t, d.Data.Actions.Distance)
	assert.True(t, now.Equal(d.Timestamp), "timestamp %v != %v", d.Timestamp, now)
}

func TestDraftLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.DraftRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, &Draft{Data: DraftData{Overload: i + 1}}))
	}

	d, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Data.Overload)
}

func TestDraftPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.DraftRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, &Draft{Data: DraftData{Overload: i}}))
	}

	require.NoError(t, repo.Prune(ctx, 2))

	var count int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM drafts").Scan(&count))
	assert.Equal(t, 2, count)

	d, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Data.Overload)

	// Pruning with more headroom than rows is a no-op.
	require.NoError(t, repo.Prune(ctx, 10))
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM drafts").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestRunAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, sid := range []string{"a", "b", "c"} {
		require.NoError(t, repo.AppendRun(ctx, &Run{
			SessionID:   sid,
			StartedAt:   start.Add(time.Duration(i) * time.Hour),
			CompletedAt: start.Add(time.Duration(i)*time.Hour + time.Minute),
			Profile:     "work",
			LoadLevel:   i * 4,
			Answers:     "YNY",
			Ranked:      []RunEntry{{Code: "003", Severity: "High", Score: 6}},
			Critical:    i == 2,
			Applied:     []string{"003"},
		}))
	}

	runs, err := repo.QueryRuns(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c", runs[0].SessionID, "newest first")
	assert.True(t, runs[0].Critical)
	assert.Equal(t, 8, runs[0].LoadLevel)
	assert.Equal(t, []RunEntry{{Code: "003", Severity: "High", Score: 6}}, runs[0].Ranked)
	assert.Equal(t, []string{"003"}, runs[0].Applied)
	assert.True(t, start.Add(2*time.Hour).Equal(runs[0].StartedAt))

	runs, err = repo.QueryRuns(ctx, QueryOpts{From: start.Add(30 * time.Minute), Limit: 1})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "c", runs[0].SessionID)

	runs, err = repo.QueryRuns(ctx, QueryOpts{To: start.Add(30 * time.Minute)})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "a", runs[0].SessionID)
}

func TestRunAppend_DuplicateSession(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.RunRepo().AppendRun(ctx, &Run{SessionID: "dup"}))
	assert.Error(t, s.RunRepo().AppendRun(ctx, &Run{SessionID: "dup"}))
	assert.Error(t, s.RunRepo().AppendRun(ctx, &Run{}))
}

func TestDefaultDBPath_Env(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "nested", "custom.db")
	t.Setenv("WXK_DB", want)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.DirExists(t, filepath.Dir(want))
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WXK_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "wxk-check", "wxk.db"), got)
}

func TestFormatListTime(t *testing.T) {
	ts := time.Date(2026, 1, 5, 7, 3, 0, 0, time.Local)
	assert.Equal(t, "2026/1/5 7:03", FormatListTime(ts))
}
