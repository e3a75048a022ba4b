package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/goldensearch/internal/testutil"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.Close())

	// Close without open is a no-op.
	assert.NoError(t, NewSQLiteStore(nil).Close())
}

func TestSQLiteStore_Migrate(t *testing.T) {
	store := setupTestStore(t)

	for _, table := range []string{"runs", "results"} {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		require.NoError(t, err, "table %s", table)
		_ = rows.Close()
	}

	version, err := store.GetMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Re-running is a no-op.
	assert.NoError(t, store.Migrate())
}

func TestSQLiteStore_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(path))
	require.NoError(t, store.Migrate())
	run, err := store.CreateRun("verify", "")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened := NewSQLiteStore(nil)
	require.NoError(t, reopened.Open(path))
	defer reopened.Close()
	require.NoError(t, reopened.Migrate())

	got, err := reopened.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "verify", got.Command)
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	tests := []struct {
		name   string
		status RunStatus
		errMsg string
	}{
		{name: "completed", status: RunStatusCompleted},
		{name: "failed", status: RunStatusFailed, errMsg: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStore(t)

			run, err := store.CreateRun("verify", "--sector quarks")
			require.NoError(t, err)
			assert.NotEmpty(t, run.ID)
			assert.Equal(t, RunStatusRunning, run.Status)

			require.NoError(t, store.CompleteRun(run.ID, tt.status, tt.errMsg))

			got, err := store.GetRun(run.ID)
			require.NoError(t, err)
			assert.Equal(t, "verify", got.Command)
			assert.Equal(t, "--sector quarks", got.Args)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.errMsg, got.Error)
			assert.WithinDuration(t, run.StartedAt, got.StartedAt, time.Second)
			require.NotNil(t, got.CompletedAt)
			assert.False(t, got.CompletedAt.Before(got.StartedAt.Add(-time.Second)))
		})
	}
}

func TestSQLiteStore_RunNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetRun("missing")
	assert.ErrorIs(t, err, ErrRunNotFound)

	err = store.CompleteRun("missing", RunStatusCompleted, "")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	store := setupTestStore(t)

	var ids []string
	for _, cmd := range []string{"verify", "hunt", "scan"} {
		run, err := store.CreateRun(cmd, "")
		require.NoError(t, err)
		ids = append(ids, run.ID)
		time.Sleep(2 * time.Millisecond)
	}

	runs, err := store.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[0], runs[2].ID)

	runs, err = store.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSQLiteStore_Results(t *testing.T) {
	store := setupTestStore(t)

	run, err := store.CreateRun("verify", "")
	require.NoError(t, err)

	rows := []ResultRow{
		{Name: "alpha_inv", Predicted: 137.0359953, Experimental: 137.035999084, ErrorPPM: 0.027, Sigma: 177},
		{Name: "strange_down", Predicted: 20, Experimental: 20, ErrorPPM: 0, Sigma: 0},
	}
	require.NoError(t, store.SaveResults(run.ID, rows))

	got, err := store.GetResults(run.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range rows {
		rows[i].RunID = run.ID
	}
	assert.Equal(t, rows, got)

	// Saving again replaces.
	require.NoError(t, store.SaveResults(run.ID, rows[:1]))
	got, err = store.GetResults(run.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	empty, err := store.GetResults("other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSQLiteStore_ResultsRequireRun(t *testing.T) {
	store := setupTestStore(t)

	err := store.SaveResults("no-such-run", []ResultRow{{Name: "x"}})
	assert.Error(t, err)
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore(nil)

	tests := []struct {
		name string
		call func() error
	}{
		{name: "migrate", call: store.Migrate},
		{name: "create run", call: func() error { _, err := store.CreateRun("x", ""); return err }},
		{name: "get run", call: func() error { _, err := store.GetRun("x"); return err }},
		{name: "complete run", call: func() error { return store.CompleteRun("x", RunStatusCompleted, "") }},
		{name: "list runs", call: func() error { _, err := store.ListRuns(1); return err }},
		{name: "save results", call: func() error { return store.SaveResults("x", nil) }},
		{name: "get results", call: func() error { _, err := store.GetResults("x"); return err }},
		{name: "version", call: func() error { _, err := store.GetMigrationVersion(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "database not opened")
		})
	}
}
