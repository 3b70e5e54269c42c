package harness

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_TestdataScenariosPass(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "failures: %v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRun_ArchivesRun(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/married_twice.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, "married_twice-0001", result.Run.ID)
	assert.Equal(t, int64(1), result.Run.Seq)
	assert.Equal(t, InlineSource, result.Run.Source)
	assert.Equal(t, 1, result.Run.Summary.Anomalies)
	assert.NotEmpty(t, result.Run.ReportHash)
}

func TestRun_FileSourceName(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/simple_family.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.Equal(t, "simple_family.ged", result.Snapshot.Source)
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/recovery.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first.Run, second.Run)
	assert.Equal(t, first.Snapshot, second.Snapshot)
}

func TestRun_ReportsFailures(t *testing.T) {
	scenario := &Scenario{
		Name:        "failing",
		Description: "wrong expectations",
		Input:       "0 @I1@ INDI\n1 SEX M\n",
		Expect: Expectation{
			Individuals: intPtr(2),
			Anomalies:   []string{"I1"},
		},
		Assertions: []Assertion{
			{Type: AssertIndividual, ID: "I1", Fields: map[string]any{"sex": "F"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, "expected 2 individuals, got 1", result.Errors[0])
	assert.Contains(t, result.Errors[2], "assertions[0]")
}

func TestRun_MissingFile(t *testing.T) {
	scenario := &Scenario{Name: "gone", Description: "d", File: filepath.Join(t.TempDir(), "gone.ged")}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input")
}

func TestRunContext_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	scenario := &Scenario{Name: "logged", Description: "d", Input: "0 @I1@ INDI\n"}

	_, err := RunContext(context.Background(), scenario, logger)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "scenario finished")
	assert.Contains(t, buf.String(), "scenario=logged")
}

func TestRunDir(t *testing.T) {
	scenarios, results, err := RunDir(context.Background(), "testdata/scenarios", nil)
	require.NoError(t, err)
	require.Len(t, results, len(scenarios))
	require.NotEmpty(t, results)

	// Glob returns file name order.
	assert.Equal(t, "deceased_spouse", scenarios[0].Name)
	for i, r := range results {
		assert.True(t, r.Pass, "%s: %v", scenarios[i].Name, r.Errors)
	}
}

func TestRunDir_Empty(t *testing.T) {
	_, _, err := RunDir(context.Background(), t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scenarios found")
}

func TestRunDir_InvalidScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: x\n"), 0644))

	_, _, err := RunDir(context.Background(), dir, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}
