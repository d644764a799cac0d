package generation

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/store"
)

func TestStoreRecorder(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "gen.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	f := &fakeFetcher{responses: []fakeResponse{
		{qs: twoQuestions()},
		{err: statusErr(500)},
	}}
	c := New(f, WithRecorder(NewStoreRecorder(st.EventRepo())))

	cfg, err := config.Default().Set(config.FieldYearLevel, "5")
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), cfg)
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), cfg)
	require.NoError(t, err)

	events, err := st.EventRepo().QueryGenerations(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	failed, ok := events[0], events[1]
	assert.True(t, ok.Success)
	assert.Equal(t, 2, ok.QuestionCount)
	assert.Equal(t, 5, ok.YearLevel)
	assert.Equal(t, "multiple_choice", ok.QuestionType)
	assert.Equal(t, f.ids[0], ok.RequestID)

	assert.False(t, failed.Success)
	assert.Equal(t, 500, failed.StatusCode)
	assert.Equal(t, "status", failed.ErrorKind)
	assert.Equal(t, 0, failed.QuestionCount)
}
