package runs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kokeshes/wxk-check/internal/catalog"
	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/questionbank"
	"github.com/kokeshes/wxk-check/internal/store"
)

func crisisResult(t *testing.T) *diagnosis.Result {
	t.Helper()
	eng := diagnosis.NewEngine(catalog.Default(), questionbank.Default())
	answers := make([]diagnosis.Answer, eng.Bank().Len())
	answers[0] = diagnosis.AnswerYes // crisis question
	res, err := eng.Evaluate(answers, diagnosis.SessionContext{Profile: diagnosis.ProfileSolo, LoadLevel: 3})
	require.NoError(t, err)
	return res
}

func TestFromResult(t *testing.T) {
	res := crisisResult(t)
	run := FromResult(res)

	assert.Equal(t, res.SessionID, run.SessionID)
	assert.Equal(t, "solo", run.Profile)
	assert.Equal(t, 3, run.LoadLevel)
	assert.Len(t, run.Answers, len(res.Answers))
	assert.Equal(t, byte('Y'), run.Answers[0])
	assert.True(t, run.Critical)
	require.NotEmpty(t, run.Ranked)
	assert.Equal(t, "E700", run.Ranked[0].Code)
	assert.Equal(t, "Critical", run.Ranked[0].Severity)
	assert.Equal(t, res.Codes(), Codes(run))
	assert.Equal(t, res.Apply, run.Applied)
}

func TestRecord(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer st.Close()
	ctx := context.Background()

	res := crisisResult(t)
	run, err := Record(ctx, st.RunRepo(), res)
	require.NoError(t, err)
	assert.Positive(t, run.ID)

	got, err := st.RunRepo().QueryRuns(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, res.SessionID, got[0].SessionID)
	assert.Equal(t, run.Answers, got[0].Answers)

	// The same session cannot be recorded twice.
	_, err = Record(ctx, st.RunRepo(), res)
	assert.Error(t, err)
}
