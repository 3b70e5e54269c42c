package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/gedcheck/internal/gedcom"
	"github.com/roach88/gedcheck/internal/report"
	"github.com/roach88/gedcheck/internal/store"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	Database    string // archive the run in this SQLite database
	Output      string // write the canonical JSON report here
	NoAnomalies bool   // skip anomaly detection

	// IDGenerator overrides the run id generator (for testing).
	// If nil, the store's UUIDv7 generator is used.
	IDGenerator store.IDGenerator
}

// ParseOutput is the data payload of a parse.
type ParseOutput struct {
	Source   string          `json:"source"`
	Summary  report.Summary  `json:"summary"`
	Snapshot report.Snapshot `json:"snapshot"`
	Run      *store.Run      `json:"run,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a GEDCOM file and report errors and anomalies",
		Long: `Parse a GEDCOM file into individuals and families.

Lines that cannot be applied are reported with their line number and
parsing continues. After parsing, individuals recorded as spouse in more
than one married family are reported as anomalies.

Use "-" to read from standard input.

Exit codes:
  0 - Parsed without line errors (anomalies do not fail the command)
  1 - One or more lines were rejected
  2 - Command error (unreadable input, database error, etc.)

Examples:
  gedcheck parse family.ged
  gedcheck parse family.ged --db runs.db
  gedcheck parse family.ged --output report.json
  cat family.ged | gedcheck parse - --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "archive the run in a SQLite database")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the canonical JSON report to a file")
	cmd.Flags().BoolVar(&opts.NoAnomalies, "no-anomalies", false, "skip anomaly detection")

	return cmd
}

func runParse(opts *ParseOptions, source string, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var input io.Reader = cmd.InOrStdin()
	if source != "-" {
		f, err := os.Open(source)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInput, "failed to open input", err)
		}
		defer f.Close()
		input = f
	}

	formatter.VerboseLog("Parsing %s", source)
	p := gedcom.NewParser(gedcom.WithLogger(formatter.Logger()))
	if err := p.ParseReader(ctx, input); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInput, "failed to read input", err)
	}
	if !opts.NoAnomalies {
		p.DetectAnomalies()
	}

	snap := report.FromResult(source, p.Result())
	out := ParseOutput{Source: source, Summary: snap.Summary(), Snapshot: snap}

	if opts.Output != "" {
		if err := writeReport(formatter, opts.Output, snap); err != nil {
			return err
		}
		formatter.VerboseLog("Report written to %s", opts.Output)
	}

	if opts.Database != "" {
		run, err := archiveRun(ctx, formatter, opts, snap)
		if err != nil {
			return err
		}
		out.Run = &run
		formatter.VerboseLog("Archived run %s (seq %d) in %s", run.ID, run.Seq, opts.Database)
	}

	if opts.Format == "json" {
		return outputParseJSON(cmd, out)
	}
	return outputParseText(cmd, out)
}

// writeReport validates the canonical report against the schema and writes it.
func writeReport(f *OutputFormatter, path string, snap report.Snapshot) error {
	data, err := snap.Canonical()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to encode report", err)
	}
	if err := report.Validate(data); err != nil {
		return f.Fail(ExitCommandError, ErrCodeSchema, "report failed schema validation", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return f.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write report", err)
	}
	return nil
}

func archiveRun(ctx context.Context, f *OutputFormatter, opts *ParseOptions, snap report.Snapshot) (store.Run, error) {
	var storeOpts []store.Option
	if opts.IDGenerator != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(opts.IDGenerator))
	}
	st, err := store.Open(opts.Database, storeOpts...)
	if err != nil {
		return store.Run{}, f.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	run, err := st.WriteRun(ctx, snap)
	if err != nil {
		return store.Run{}, f.Fail(ExitCommandError, ErrCodeStore, "failed to archive run", err)
	}
	return run, nil
}

func outputParseJSON(cmd *cobra.Command, out ParseOutput) error {
	response := CLIResponse{Status: "ok", Data: out}
	if out.Summary.Errors > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeParseErrors,
			Message: fmt.Sprintf("%d line(s) rejected", out.Summary.Errors),
		}
	}
	if err := writeJSON(cmd.OutOrStdout(), response); err != nil {
		return err
	}
	return parseExitError(out.Summary)
}

func outputParseText(cmd *cobra.Command, out ParseOutput) error {
	w := cmd.OutOrStdout()

	for _, e := range out.Snapshot.Errors {
		fmt.Fprintf(w, "line %d: %s: %s\n", e.Line, e.Code, e.Message)
	}
	for _, a := range out.Snapshot.Anomalies {
		fmt.Fprintln(w, a.Message)
	}
	if len(out.Snapshot.Errors) > 0 || len(out.Snapshot.Anomalies) > 0 {
		fmt.Fprintln(w)
	}

	s := out.Summary
	fmt.Fprintf(w, "%s: %d individuals, %d families, %d errors, %d anomalies\n",
		out.Source, s.Individuals, s.Families, s.Errors, s.Anomalies)
	if out.Run != nil {
		fmt.Fprintf(w, "Run: %s (seq %d)\n", out.Run.ID, out.Run.Seq)
	}
	return parseExitError(s)
}

// parseExitError fails the command when any line was rejected.
func parseExitError(s report.Summary) error {
	if s.Errors > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d line(s) rejected", s.Errors))
	}
	return nil
}
