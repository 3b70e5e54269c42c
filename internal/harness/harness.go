package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/gedcheck/internal/gedcom"
	"github.com/roach88/gedcheck/internal/report"
	"github.com/roach88/gedcheck/internal/store"
	"github.com/roach88/gedcheck/internal/testutil"
)

// InlineSource is the snapshot source name of scenarios with inline input.
const InlineSource = "inline"

// Harness is the test execution engine.
// It parses scenario input, archives the result in a fresh in-memory
// store and evaluates expectations against the archived snapshot.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation, with
// sequential run ids so results are reproducible.
//
// Execution flow:
// 1. Parse the input and detect anomalies
// 2. Archive the snapshot and read it back
// 3. Check whole-result expectations
// 4. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, nil)
}

// RunContext is Run with a context and logger. A nil logger discards output.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	st, err := store.Open(":memory:", store.WithIDGenerator(testutil.NewSequenceIDGenerator(scenario.Name)))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{store: st, logger: logger}

	snap, err := h.parse(ctx, scenario)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	if err := h.archive(ctx, snap, result); err != nil {
		return nil, err
	}

	for _, msg := range checkExpectation(result.Snapshot, scenario.Expect) {
		result.AddError(msg)
	}
	for i, a := range scenario.Assertions {
		if err := evaluateAssertion(result.Snapshot, a); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	h.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"failures", len(result.Errors),
	)
	return result, nil
}

// parse runs the parser over the scenario input.
func (h *Harness) parse(ctx context.Context, scenario *Scenario) (report.Snapshot, error) {
	var (
		input  io.Reader
		source = InlineSource
	)
	if scenario.File != "" {
		f, err := os.Open(scenario.File)
		if err != nil {
			return report.Snapshot{}, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		input = f
		source = filepath.Base(scenario.File)
	} else {
		input = strings.NewReader(scenario.Input)
	}

	p := gedcom.NewParser(gedcom.WithLogger(h.logger))
	if err := p.ParseReader(ctx, input); err != nil {
		return report.Snapshot{}, fmt.Errorf("failed to parse input: %w", err)
	}
	p.DetectAnomalies()
	return report.FromResult(source, p.Result()), nil
}

// archive writes the snapshot to the store and reads it back into result.
// A read-back that hashes differently is recorded as a failure.
func (h *Harness) archive(ctx context.Context, snap report.Snapshot, result *Result) error {
	run, err := h.store.WriteRun(ctx, snap)
	if err != nil {
		return fmt.Errorf("failed to archive run: %w", err)
	}
	stored, err := h.store.ReadSnapshot(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("failed to read archived run: %w", err)
	}

	hash, err := report.Hash(stored)
	if err != nil {
		return fmt.Errorf("failed to hash archived run: %w", err)
	}
	if hash != run.ReportHash {
		result.AddError(fmt.Sprintf("archived snapshot hash %s does not match written hash %s", hash, run.ReportHash))
	}

	result.Run = run
	result.Snapshot = stored
	h.logger.Debug("run archived", "run_id", run.ID, "report_hash", run.ReportHash)
	return nil
}

// RunDir loads and runs every scenario file under dir, in path order.
// Scenario load failures are returned as errors; failing expectations are
// reported in the results.
func RunDir(ctx context.Context, dir string, logger *slog.Logger) ([]*Scenario, []*Result, error) {
	paths, err := FindScenarios(dir, "")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no scenarios found in %s", dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	results := make([]*Result, 0, len(paths))
	for _, path := range paths {
		scenario, err := LoadScenario(path)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		result, err := RunContext(ctx, scenario, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", scenario.Name, err)
		}
		scenarios = append(scenarios, scenario)
		results = append(results, result)
	}
	return scenarios, results, nil
}
