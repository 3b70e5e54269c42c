package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gedcheck/internal/report"
	"github.com/roach88/gedcheck/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
}

// ShowOutput is the data payload when showing a single run.
type ShowOutput struct {
	Run      store.Run       `json:"run"`
	Snapshot report.Snapshot `json:"snapshot"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show [run-id|latest]",
		Short: "List archived runs or show one run",
		Long: `Show parse runs archived with "gedcheck parse --db".

Without an argument, lists every run in seq order. With a run id, or
"latest", prints that run's individuals, families, errors and anomalies.

Examples:
  gedcheck show --db runs.db
  gedcheck show --db runs.db latest
  gedcheck show --db runs.db 01928f3e-... --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			return runShow(opts, runID, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runShow(opts *ShowOptions, runID string, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	if _, err := os.Stat(opts.Database); errors.Is(err, fs.ErrNotExist) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.Database), nil)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if runID == "" {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to list runs", err)
		}
		formatter.VerboseLog("Found %d run(s) in %s", len(runs), opts.Database)
		if opts.Format == "json" {
			return formatter.Success(runs)
		}
		outputRunsText(cmd, runs)
		return nil
	}

	out, err := loadRun(ctx, formatter, st, runID)
	if err != nil {
		return err
	}
	if opts.Format == "json" {
		return formatter.Success(out)
	}
	outputRunText(cmd, out)
	return nil
}

// loadRun resolves "latest" or a run id and reads the run's snapshot.
func loadRun(ctx context.Context, f *OutputFormatter, st *store.Store, runID string) (ShowOutput, error) {
	var (
		run store.Run
		err error
	)
	if runID == "latest" {
		run, err = st.LatestRun(ctx)
	} else {
		run, err = st.ReadRun(ctx, runID)
	}
	if errors.Is(err, store.ErrRunNotFound) {
		return ShowOutput{}, f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("run %q not found", runID), err)
	}
	if err != nil {
		return ShowOutput{}, f.Fail(ExitCommandError, ErrCodeStore, "failed to read run", err)
	}

	snap, err := st.ReadSnapshot(ctx, run.ID)
	if err != nil {
		return ShowOutput{}, f.Fail(ExitCommandError, ErrCodeStore, "failed to read run", err)
	}
	return ShowOutput{Run: run, Snapshot: snap}, nil
}

func outputRunsText(cmd *cobra.Command, runs []store.Run) {
	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs archived.")
		return
	}
	for _, r := range runs {
		s := r.Summary
		fmt.Fprintf(w, "%d  %s  %s  individuals=%d families=%d errors=%d anomalies=%d\n",
			r.Seq, r.ID, r.Source, s.Individuals, s.Families, s.Errors, s.Anomalies)
	}
}

func outputRunText(cmd *cobra.Command, out ShowOutput) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Run %s (seq %d)\n", out.Run.ID, out.Run.Seq)
	fmt.Fprintf(w, "Source: %s\n", out.Run.Source)
	fmt.Fprintf(w, "Hash: %s\n", out.Run.ReportHash)

	fmt.Fprintf(w, "\nIndividuals (%d):\n", len(out.Snapshot.Individuals))
	for _, r := range out.Snapshot.Individuals {
		fmt.Fprintf(w, "  %s  %s  %s", r.ID, r.Sex, r.Name)
		if r.Birth != "" {
			fmt.Fprintf(w, "  b. %s", r.Birth)
		}
		if r.Death != "" {
			fmt.Fprintf(w, "  d. %s", r.Death)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\nFamilies (%d):\n", len(out.Snapshot.Families))
	for _, r := range out.Snapshot.Families {
		fmt.Fprintf(w, "  %s  husband=%s wife=%s children=[%s]", r.ID, orDash(r.Husband), orDash(r.Wife), strings.Join(r.Children, " "))
		if r.Married != "" {
			fmt.Fprintf(w, "  m. %s", r.Married)
		}
		if r.Divorced != "" {
			fmt.Fprintf(w, "  div. %s", r.Divorced)
		}
		fmt.Fprintln(w)
	}

	if len(out.Snapshot.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors (%d):\n", len(out.Snapshot.Errors))
		for _, e := range out.Snapshot.Errors {
			fmt.Fprintf(w, "  line %d: %s: %s\n", e.Line, e.Code, e.Message)
		}
	}
	if len(out.Snapshot.Anomalies) > 0 {
		fmt.Fprintf(w, "\nAnomalies (%d):\n", len(out.Snapshot.Anomalies))
		for _, a := range out.Snapshot.Anomalies {
			fmt.Fprintf(w, "  %s\n", a.Message)
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
