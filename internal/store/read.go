package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/gedcheck/internal/report"
)

// ErrRunNotFound is returned when no run matches the requested id.
var ErrRunNotFound = errors.New("run not found")

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	err := row.Scan(
		&r.ID,
		&r.Seq,
		&r.Source,
		&r.ReportHash,
		&r.Summary.Individuals,
		&r.Summary.Families,
		&r.Summary.Errors,
		&r.Summary.Anomalies,
	)
	return r, err
}

// ReadRun returns the run with the given id.
// Returns ErrRunNotFound if it does not exist.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, source, report_hash, individual_count, family_count, error_count, anomaly_count
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns every run ordered by seq.
// Returns an empty slice (not nil) if the store has no runs.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, source, report_hash, individual_count, family_count, error_count, anomaly_count
		FROM runs
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LatestRun returns the run with the highest seq.
// Returns ErrRunNotFound if the store is empty.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, source, report_hash, individual_count, family_count, error_count, anomaly_count
		FROM runs
		ORDER BY seq DESC
		LIMIT 1
	`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("latest run: %w", ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

// ReadSnapshot rebuilds the snapshot archived under runID.
func (s *Store) ReadSnapshot(ctx context.Context, runID string) (report.Snapshot, error) {
	run, err := s.ReadRun(ctx, runID)
	if err != nil {
		return report.Snapshot{}, err
	}

	snap := report.Snapshot{Source: run.Source}
	if snap.Individuals, err = s.readIndividuals(ctx, runID); err != nil {
		return report.Snapshot{}, err
	}
	if snap.Families, err = s.readFamilies(ctx, runID); err != nil {
		return report.Snapshot{}, err
	}
	if snap.Errors, err = s.readErrors(ctx, runID); err != nil {
		return report.Snapshot{}, err
	}
	if snap.Anomalies, err = s.readAnomalies(ctx, runID); err != nil {
		return report.Snapshot{}, err
	}
	return snap, nil
}

func (s *Store) readIndividuals(ctx context.Context, runID string) ([]report.IndividualRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, sex, birth, death, child_of, spouse_of
		FROM individuals
		WHERE run_id = ?
		ORDER BY id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query individuals: %w", err)
	}
	defer rows.Close()

	records := []report.IndividualRecord{}
	for rows.Next() {
		var r report.IndividualRecord
		var childOf, spouseOf string
		if err := rows.Scan(&r.ID, &r.Name, &r.Sex, &r.Birth, &r.Death, &childOf, &spouseOf); err != nil {
			return nil, fmt.Errorf("scan individual: %w", err)
		}
		if r.ChildOf, err = unmarshalIDs(childOf); err != nil {
			return nil, fmt.Errorf("individual %s: %w", r.ID, err)
		}
		if r.SpouseOf, err = unmarshalIDs(spouseOf); err != nil {
			return nil, fmt.Errorf("individual %s: %w", r.ID, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate individuals: %w", err)
	}
	return records, nil
}

func (s *Store) readFamilies(ctx context.Context, runID string) ([]report.FamilyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, husband_id, wife_id, children, married, divorced
		FROM families
		WHERE run_id = ?
		ORDER BY id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query families: %w", err)
	}
	defer rows.Close()

	records := []report.FamilyRecord{}
	for rows.Next() {
		var r report.FamilyRecord
		var children string
		if err := rows.Scan(&r.ID, &r.Husband, &r.Wife, &children, &r.Married, &r.Divorced); err != nil {
			return nil, fmt.Errorf("scan family: %w", err)
		}
		if r.Children, err = unmarshalIDs(children); err != nil {
			return nil, fmt.Errorf("family %s: %w", r.ID, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate families: %w", err)
	}
	return records, nil
}

func (s *Store) readErrors(ctx context.Context, runID string) ([]report.ErrorRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT line, code, message
		FROM parse_errors
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query parse errors: %w", err)
	}
	defer rows.Close()

	records := []report.ErrorRecord{}
	for rows.Next() {
		var r report.ErrorRecord
		if err := rows.Scan(&r.Line, &r.Code, &r.Message); err != nil {
			return nil, fmt.Errorf("scan parse error: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parse errors: %w", err)
	}
	return records, nil
}

func (s *Store) readAnomalies(ctx context.Context, runID string) ([]report.AnomalyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, individual_id, families, message
		FROM anomalies
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query anomalies: %w", err)
	}
	defer rows.Close()

	records := []report.AnomalyRecord{}
	for rows.Next() {
		var r report.AnomalyRecord
		var families string
		if err := rows.Scan(&r.Code, &r.IndividualID, &families, &r.Message); err != nil {
			return nil, fmt.Errorf("scan anomaly: %w", err)
		}
		if r.Families, err = unmarshalIDs(families); err != nil {
			return nil, fmt.Errorf("anomaly %d: %w", len(records)+1, err)
		}
		if r.Families == nil {
			r.Families = []string{}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate anomalies: %w", err)
	}
	return records, nil
}
