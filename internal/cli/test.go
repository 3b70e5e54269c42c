package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/gedcheck/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Golden string // golden report directory; empty skips golden comparison
	Update bool   // rewrite golden reports instead of comparing
	Filter string // filepath.Match pattern on scenario file names
}

// ScenarioResult is the outcome of one scenario.
type ScenarioResult struct {
	Name          string   `json:"name"`
	Pass          bool     `json:"pass"`
	Errors        []string `json:"errors,omitempty"`
	GoldenUpdated bool     `json:"golden_updated,omitempty"`
}

// TestResult aggregates every scenario outcome of one test command.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run conformance scenarios",
		Long: `Run GEDCOM conformance scenarios.

Each scenario file names an input and the counts, error codes, anomalies
and records the parse must produce. With --golden, the canonical report of
each scenario is also compared with <golden>/<name>.golden.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  gedcheck test ./scenarios
  gedcheck test ./scenarios --filter "married*"
  gedcheck test ./scenarios --golden ./golden --update
  gedcheck test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Golden, "golden", "", "directory of golden report files")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "rewrite golden files (requires --golden)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "only run scenarios whose file name matches this glob")

	return cmd
}

func runTests(cmd *cobra.Command, opts *TestOptions, dir string) error {
	formatter := newFormatter(cmd, opts.RootOptions)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("scenarios directory not found: %s", dir), nil)
	}
	if opts.Update && opts.Golden == "" {
		return NewExitError(ExitCommandError, "--update requires --golden")
	}

	paths, err := harness.FindScenarios(dir, opts.Filter)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to find scenarios", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := formatter.Logger()
	formatter.VerboseLog("Running %d scenario(s) from %s", len(paths), dir)

	result := TestResult{Scenarios: make([]ScenarioResult, 0, len(paths)), Total: len(paths)}
	for _, path := range paths {
		sr := runScenario(ctx, opts, path, logger)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Scenarios = append(result.Scenarios, sr)
	}

	if opts.Format == "json" {
		if err := outputTestJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		outputTestText(cmd.OutOrStdout(), result)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

// runScenario loads, runs and golden-checks one scenario file. Every failure
// is folded into the returned result.
func runScenario(ctx context.Context, opts *TestOptions, path string, logger *slog.Logger) ScenarioResult {
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return failed(filepath.Base(path), fmt.Sprintf("failed to load scenario: %v", err))
	}

	res, err := harness.RunContext(ctx, scenario, logger)
	if err != nil {
		return failed(scenario.Name, fmt.Sprintf("execution failed: %v", err))
	}

	sr := ScenarioResult{Name: scenario.Name, Pass: res.Pass, Errors: res.Errors}
	if opts.Golden == "" {
		return sr
	}

	goldenPath := harness.GoldenPath(opts.Golden, scenario.Name)
	if opts.Update {
		if err := harness.WriteGolden(goldenPath, res); err != nil {
			return failed(scenario.Name, err.Error())
		}
		sr.GoldenUpdated = true
		return sr
	}

	match, found, err := harness.MatchGolden(goldenPath, res)
	switch {
	case err != nil:
		return failed(scenario.Name, fmt.Sprintf("golden comparison failed: %v", err))
	case found && !match:
		sr.Pass = false
		sr.Errors = append(sr.Errors, "report does not match golden file (run with --update to regenerate)")
	}
	return sr
}

func failed(name string, msgs ...string) ScenarioResult {
	return ScenarioResult{Name: name, Errors: msgs}
}

func outputTestJSON(w io.Writer, result TestResult) error {
	resp := CLIResponse{Status: "ok", Data: result}
	if result.Failed > 0 {
		resp.Status = "error"
		resp.Error = &CLIError{
			Code:    ErrCodeTestFailed,
			Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
		}
	}
	return writeJSON(w, resp)
}

func outputTestText(w io.Writer, result TestResult) {
	if result.Total == 0 {
		fmt.Fprintln(w, "No scenarios found.")
		return
	}
	for _, sr := range result.Scenarios {
		switch {
		case !sr.Pass:
			fmt.Fprintf(w, "✗ %s\n", sr.Name)
			for _, e := range sr.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
		case sr.GoldenUpdated:
			fmt.Fprintf(w, "✓ %s (golden updated)\n", sr.Name)
		default:
			fmt.Fprintf(w, "✓ %s\n", sr.Name)
		}
	}
	fmt.Fprintf(w, "\nTest Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	if result.Failed == 0 {
		fmt.Fprintln(w, "✓ All scenarios passed")
	}
}
