package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteRunLifecycle(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "report.docx", "workbook.xlsx")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, RunStatusPending, run.Status)

	result := map[string]any{"success": true, "matched_fields": 7}
	require.NoError(t, s.CompleteRun(ctx, run.ID, result))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusComplete, got.Status)
	assert.Equal(t, "report.docx", got.DocFile)
	assert.Equal(t, "workbook.xlsx", got.XlsxFile)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(got.Result, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.InDelta(t, 7, decoded["matched_fields"], 0.001)
}

func TestSQLiteFailRun(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "report.docx", "workbook.xlsx")
	require.NoError(t, err)

	require.NoError(t, s.FailRun(ctx, run.ID, eris.New("decode failure")))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusFailed, got.Status)
	assert.Contains(t, got.Error, "decode failure")
	assert.Nil(t, got.Result)
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.GetRun(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no run with id")
}

func TestSQLiteUpdateMissingRun(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	err := s.CompleteRun(ctx, "nonexistent", map[string]any{})
	require.Error(t, err)

	err = s.FailRun(ctx, "nonexistent", eris.New("boom"))
	require.Error(t, err)
}

func TestSQLiteListRuns(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	a, err := s.CreateRun(ctx, "a.docx", "a.xlsx")
	require.NoError(t, err)
	b, err := s.CreateRun(ctx, "b.docx", "b.xlsx")
	require.NoError(t, err)
	require.NoError(t, s.CompleteRun(ctx, b.ID, map[string]any{"success": true}))

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := s.ListRuns(ctx, RunFilter{Status: RunStatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, a.ID, pending[0].ID)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
