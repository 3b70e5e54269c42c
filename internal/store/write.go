package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/gedcheck/internal/report"
)

// Run describes one archived parse.
type Run struct {
	ID         string         `json:"id"`
	Seq        int64          `json:"seq"`
	Source     string         `json:"source"`
	ReportHash string         `json:"report_hash"`
	Summary    report.Summary `json:"summary"`
}

// WriteRun archives a snapshot as a new run in a single transaction.
// The run gets a fresh id from the store's IDGenerator and the next seq.
func (s *Store) WriteRun(ctx context.Context, snap report.Snapshot) (Run, error) {
	hash, err := report.Hash(snap)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("write run: next seq: %w", err)
	}

	run := Run{
		ID:         s.ids.Generate(),
		Seq:        seq,
		Source:     snap.Source,
		ReportHash: hash,
		Summary:    snap.Summary(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, source, report_hash, individual_count, family_count, error_count, anomaly_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.Source,
		run.ReportHash,
		run.Summary.Individuals,
		run.Summary.Families,
		run.Summary.Errors,
		run.Summary.Anomalies,
	)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	if err := writeIndividuals(ctx, tx, run.ID, snap.Individuals); err != nil {
		return Run{}, err
	}
	if err := writeFamilies(ctx, tx, run.ID, snap.Families); err != nil {
		return Run{}, err
	}
	if err := writeErrors(ctx, tx, run.ID, snap.Errors); err != nil {
		return Run{}, err
	}
	if err := writeAnomalies(ctx, tx, run.ID, snap.Anomalies); err != nil {
		return Run{}, err
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}
	return run, nil
}

func writeIndividuals(ctx context.Context, tx *sql.Tx, runID string, records []report.IndividualRecord) error {
	for _, r := range records {
		childOf, err := marshalIDs(r.ChildOf)
		if err != nil {
			return fmt.Errorf("write individual %s: %w", r.ID, err)
		}
		spouseOf, err := marshalIDs(r.SpouseOf)
		if err != nil {
			return fmt.Errorf("write individual %s: %w", r.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO individuals
			(run_id, id, name, sex, birth, death, child_of, spouse_of)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, r.ID, r.Name, r.Sex, r.Birth, r.Death, childOf, spouseOf)
		if err != nil {
			return fmt.Errorf("write individual %s: %w", r.ID, err)
		}
	}
	return nil
}

func writeFamilies(ctx context.Context, tx *sql.Tx, runID string, records []report.FamilyRecord) error {
	for _, r := range records {
		children, err := marshalIDs(r.Children)
		if err != nil {
			return fmt.Errorf("write family %s: %w", r.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO families
			(run_id, id, husband_id, wife_id, children, married, divorced)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, runID, r.ID, r.Husband, r.Wife, children, r.Married, r.Divorced)
		if err != nil {
			return fmt.Errorf("write family %s: %w", r.ID, err)
		}
	}
	return nil
}

func writeErrors(ctx context.Context, tx *sql.Tx, runID string, records []report.ErrorRecord) error {
	for i, r := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO parse_errors (run_id, seq, line, code, message)
			VALUES (?, ?, ?, ?, ?)
		`, runID, i+1, r.Line, r.Code, r.Message)
		if err != nil {
			return fmt.Errorf("write parse error %d: %w", i+1, err)
		}
	}
	return nil
}

func writeAnomalies(ctx context.Context, tx *sql.Tx, runID string, records []report.AnomalyRecord) error {
	for i, r := range records {
		families, err := marshalIDs(r.Families)
		if err != nil {
			return fmt.Errorf("write anomaly %d: %w", i+1, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO anomalies (run_id, seq, code, individual_id, families, message)
			VALUES (?, ?, ?, ?, ?, ?)
		`, runID, i+1, r.Code, r.IndividualID, families, r.Message)
		if err != nil {
			return fmt.Errorf("write anomaly %d: %w", i+1, err)
		}
	}
	return nil
}
