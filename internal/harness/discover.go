package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FindScenarios returns the scenario files under dir, recursively, sorted by
// path. A non-empty filter is a filepath.Match pattern applied to the file
// name without its extension.
func FindScenarios(dir, filter string) ([]string, error) {
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", filter, err)
		}
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := filepath.Ext(path)
		if d.IsDir() || (ext != ".yaml" && ext != ".yml") {
			return nil
		}
		if filter != "" {
			// Pattern validity was checked above.
			if ok, _ := filepath.Match(filter, strings.TrimSuffix(d.Name(), ext)); !ok {
				return nil
			}
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)
	return paths, nil
}

// GoldenPath is where the golden report of the named scenario lives in dir.
func GoldenPath(dir, scenarioName string) string {
	return filepath.Join(dir, scenarioName+".golden")
}

// WriteGolden stores the canonical report of result as a golden file,
// creating parent directories as needed.
func WriteGolden(path string, result *Result) error {
	data, err := result.Snapshot.Canonical()
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// MatchGolden reports whether the canonical report of result equals the
// golden file at path. A missing golden file is reported as ok=false with
// found=false and no error.
func MatchGolden(path string, result *Result) (ok, found bool, err error) {
	want, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to read golden file: %w", err)
	}
	got, err := result.Snapshot.Canonical()
	if err != nil {
		return false, true, fmt.Errorf("failed to marshal report: %w", err)
	}
	return bytes.Equal(want, got), true, nil
}
