package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/gedcheck/internal/report"
)

// marshalIDs converts an id list to canonical JSON TEXT for storage.
// A nil list is stored as "[]".
func marshalIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := report.MarshalCanonical(ids)
	if err != nil {
		return "", fmt.Errorf("marshal ids: %w", err)
	}
	return string(data), nil
}

// unmarshalIDs parses JSON TEXT into an id list. "[]" yields nil so that
// records read back match snapshots built by report.FromResult.
func unmarshalIDs(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, fmt.Errorf("unmarshal ids: %w", err)
	}
	return ids, nil
}
