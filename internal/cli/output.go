package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// Exit codes shared by every command.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // lines rejected, or scenarios failed
	ExitCommandError = 2 // unreadable input, bad flags, store failures
)

// Response error codes.
const (
	ErrCodeGeneric     = "E001"
	ErrCodeInput       = "E002" // input file missing or unreadable
	ErrCodeNotFound    = "E005" // database or run not found
	ErrCodeWriteFailed = "E007"
	ErrCodeStore       = "E008" // archive open, read or write
	ErrCodeSchema      = "E009" // report rejected by the schema

	ErrCodeParseErrors = "E_PARSE_ERRORS"
	ErrCodeTestFailed  = "E_TEST_FAILED"
)

// ExitError is a command failure carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError returns an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError returns an ExitError wrapping err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps an Execute error to a process exit code. Errors that are
// not ExitErrors come from cobra flag and argument handling.
func GetExitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	default:
		return ExitCommandError
	}
}

// CLIResponse is the envelope of every JSON response.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError describes a failure in a JSON response.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// OutputFormatter writes command results as text or JSON envelopes.
// Diagnostics go to ErrWriter, or Writer when ErrWriter is nil.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// Success writes data as an "ok" envelope, or prints it in text mode.
func (f *OutputFormatter) Success(data any) error {
	if f.Format != "json" {
		_, err := fmt.Fprintln(f.Writer, data)
		return err
	}
	return writeJSON(f.Writer, CLIResponse{Status: "ok", Data: data})
}

// Error writes an "error" envelope, or a one-line message in text mode.
// Text details are shown only when verbose.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return writeJSON(f.Writer, CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail ends a command with exitCode. In JSON mode the error envelope is
// written first; in text mode the caller of Execute prints the error.
func (f *OutputFormatter) Fail(exitCode int, code, message string, err error) error {
	if f.Format == "json" {
		var details any
		if err != nil {
			details = map[string]string{"cause": err.Error()}
		}
		if werr := f.Error(code, message, details); werr != nil {
			return WrapExitError(ExitCommandError, "failed to write response", werr)
		}
	}
	return WrapExitError(exitCode, message, err)
}

// VerboseLog prints a diagnostic line when verbose.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if f.Verbose {
		fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
	}
}

// GetErrWriter returns the diagnostic writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// Logger returns a structured logger on the diagnostic writer.
func (f *OutputFormatter) Logger() *slog.Logger {
	return NewLogger(f.GetErrWriter(), f.Verbose)
}

// NewLogger builds a text slog logger. Verbose mode logs at Debug, which
// includes every rejected line; otherwise only warnings and errors.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
