package harness

import (
	"github.com/roach88/gedcheck/internal/report"
	"github.com/roach88/gedcheck/internal/store"
)

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every expectation and assertion holds.
	Pass bool `json:"pass"`

	// Snapshot is the parse result as read back from the archive.
	Snapshot report.Snapshot `json:"snapshot"`

	// Run is the archived run the snapshot was read from.
	Run store.Run `json:"run"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
