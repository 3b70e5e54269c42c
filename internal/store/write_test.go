package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gedcheck/internal/report"
	"github.com/roach88/gedcheck/internal/testutil"
)

func TestWriteRun_AssignsIDAndSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	snap := testutil.ParseSnapshot(t, "married.ged", testutil.MarriedTwice...)

	first, err := s.WriteRun(ctx, snap)
	require.NoError(t, err)
	second, err := s.WriteRun(ctx, snap)
	require.NoError(t, err)

	assert.Equal(t, "run-0001", first.ID)
	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, "run-0002", second.ID)
	assert.Equal(t, int64(2), second.Seq)
}

func TestWriteRun_RecordsSummaryAndHash(t *testing.T) {
	s := createTestStore(t)
	snap := testutil.ParseSnapshot(t, "married.ged", testutil.MarriedTwice...)

	run, err := s.WriteRun(context.Background(), snap)
	require.NoError(t, err)

	want, err := report.Hash(snap)
	require.NoError(t, err)
	assert.Equal(t, want, run.ReportHash)
	assert.Equal(t, "married.ged", run.Source)
	assert.Equal(t, report.Summary{Individuals: 2, Families: 2, Errors: 1, Anomalies: 1}, run.Summary)
}

func TestWriteRun_RowCounts(t *testing.T) {
	s := createTestStore(t)
	snap := testutil.ParseSnapshot(t, "married.ged", testutil.MarriedTwice...)

	run, err := s.WriteRun(context.Background(), snap)
	require.NoError(t, err)

	tables := map[string]int{
		"individuals":  2,
		"families":     2,
		"parse_errors": 1,
		"anomalies":    1,
	}
	for table, want := range tables {
		var got int
		err := s.db.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE run_id = ?", run.ID).Scan(&got)
		require.NoError(t, err)
		assert.Equal(t, want, got, table)
	}
}

func TestWriteRun_RejectsInvalidSex(t *testing.T) {
	s := createTestStore(t)
	snap := report.Snapshot{
		Source:      "bad.ged",
		Individuals: []report.IndividualRecord{{ID: "I1", Sex: "X"}},
	}

	_, err := s.WriteRun(context.Background(), snap)
	require.Error(t, err)

	// The failed transaction leaves no run behind.
	runs, err := s.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestWriteRun_CancelledContext(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.WriteRun(ctx, testutil.ParseSnapshot(t, "x.ged", testutil.MarriedTwice...))
	assert.ErrorIs(t, err, context.Canceled)
}
