package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryAppendAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EntryRepo()
	ctx := context.Background()

	e := &Entry{
		Profile:          "relationship",
		Overload:         6,
		Codes:            []string{"202", "E220"},
		Note:             "long call again",
		Actions:          Actions{Distance: true, Stop: true},
		BoundaryTemplate: "That is all for today.",
		BoundaryNote:     "said it kindly",
	}
	require.NoError(t, repo.Append(ctx, e))
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Positive(t, e.Sequence)

	got, err := repo.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, e.Sequence, got.Sequence)
	assert.Equal(t, "relationship", got.Profile)
	assert.Equal(t, 6, got.Overload)
	assert.Equal(t, []string{"202", "E220"}, got.Codes)
	assert.Equal(t, "long call again", got.Note)
	assert.Equal(t, Actions{Distance: true, Stop: true}, got.Actions)
	assert.Equal(t, "That is all for today. / said it kindly", got.Boundary())
	assert.WithinDuration(t, e.Timestamp, got.Timestamp, time.Millisecond)
}

func TestEntryAppend_Normalizes(t *testing.T) {
	s := openTestStore(t)
	repo := s.EntryRepo()
	ctx := context.Background()

	e := &Entry{Overload: 14}
	require.NoError(t, repo.Append(ctx, e))
	got, err := repo.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, MaxOverload, got.Overload)
	assert.NotNil(t, got.Codes)
	assert.Empty(t, got.Codes)

	e = &Entry{Overload: -2}
	require.NoError(t, repo.Append(ctx, e))
	assert.Equal(t, MinOverload, e.Overload)
}

func TestEntryGet_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.EntryRepo().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntryListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.EntryRepo()
	ctx := context.Background()

	for _, note := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Append(ctx, &Entry{Note: note}))
	}

	entries, err := repo.List(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Note)
	assert.Equal(t, "first", entries[2].Note)

	entries, err = repo.List(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[1].Note)

	entries, err = repo.List(ctx, QueryOpts{Offset: 2})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "first", entries[0].Note)
}

func TestEntryListFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EntryRepo()
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	seed := []Entry{
		{Timestamp: base, Profile: "work", Codes: []string{"003", "E510"}},
		{Timestamp: base.Add(time.Hour), Profile: "solo", Codes: []string{"005"}},
		{Timestamp: base.Add(2 * time.Hour), Profile: "work", Codes: []string{"E300"}},
	}
	var seqs []int64
	for i := range seed {
		require.NoError(t, repo.Append(ctx, &seed[i]))
		seqs = append(seqs, seed[i].Sequence)
	}

	tests := []struct {
		name  string
		opts  QueryOpts
		notes int
		first string
	}{
		{"profile", QueryOpts{Profile: "work"}, 2, "E300"},
		{"code", QueryOpts{Code: "E510"}, 1, "003"},
		{"code is exact", QueryOpts{Code: "00"}, 0, ""},
		{"from", QueryOpts{From: base.Add(30 * time.Minute)}, 2, "E300"},
		{"to", QueryOpts{To: base.Add(90 * time.Minute)}, 2, "005"},
		{"after", QueryOpts{After: seqs[0]}, 2, "E300"},
		{"before", QueryOpts{Before: seqs[2]}, 2, "005"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := repo.List(ctx, tt.opts)
			require.NoError(t, err)
			require.Len(t, entries, tt.notes)
			if tt.notes > 0 {
				assert.Equal(t, tt.first, entries[0].Codes[0])
			}
		})
	}
}

func TestEntryDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.EntryRepo()
	ctx := context.Background()

	a := &Entry{Note: "a"}
	b := &Entry{Note: "b"}
	require.NoError(t, repo.Append(ctx, a))
	require.NoError(t, repo.Append(ctx, b))

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), ErrNotFound)

	entries, err := repo.List(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, b.ID, entries[0].ID)
}

func TestEntryReplaceAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.EntryRepo()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &Entry{Note: "old"}))

	incoming := []Entry{
		{ID: "n2", Note: "newest"},
		{ID: "n1", Note: "older"},
		{Note: "no id"},
	}
	require.NoError(t, repo.ReplaceAll(ctx, incoming))

	entries, err := repo.List(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "n2", entries[0].ID, "input order is preserved newest first")
	assert.Equal(t, "n1", entries[1].ID)
	assert.NotEmpty(t, entries[2].ID)
	assert.Equal(t, "no id", entries[2].Note)
}

func TestEntryReplaceAll_DuplicateRollsBack(t *testing.T) {
	s := openTestStore(t)
	repo := s.EntryRepo()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &Entry{ID: "keep", Note: "kept"}))
	err := repo.ReplaceAll(ctx, []Entry{{ID: "x"}, {ID: "x"}})
	require.Error(t, err)

	entries, err := repo.List(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep", entries[0].ID)
}

func TestEntryWipe(t *testing.T) {
	s := openTestStore(t)
	repo := s.EntryRepo()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Append(ctx, &Entry{}))
	}
	n, err := repo.Wipe(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
